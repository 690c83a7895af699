package interpreter

// returnSignal unwinds a function body. It never reaches a try/catch
// handler since handlers only match division by zero errors.
type returnSignal struct {
	value Value
}

func (r returnSignal) Error() string {
	return "return"
}
