package compiler_errors

type CompilerError interface {
	error
	GetMessage() string
	GetLine() int
	GetColumn() int
	HasPosition() bool
}

type ErrorHandler interface {
	AddError(err CompilerError)
	FailNow()
	Errors() []CompilerError
}

// bailout is the panic value FailNow uses to abort a pass.
type bailout struct {
	err CompilerError
}

type CompilerErrorHandler struct {
	errors []CompilerError
}

func NewErrorHandler() ErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]CompilerError, 0),
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

// FailNow stops the running pass. The pass entry point must defer Recover.
func (eh *CompilerErrorHandler) FailNow() {
	if len(eh.errors) == 0 {
		panic(bailout{err: NewSyntaxError("internal error: failed without a reported error", nil)})
	}

	panic(bailout{err: eh.errors[0]})
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	return eh.errors
}

// Recover turns a FailNow bailout into *errp. Other panics are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	b, ok := r.(bailout)
	if !ok {
		panic(r)
	}
	*errp = b.err
}
