package model

// Decorator enriches a survey after it has been decoded, for example by
// annotating questions with their resolved camp data type.
type Decorator interface {
	Decorate(*Survey) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Survey) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(survey *Survey) error {
	return fn(survey)
}
