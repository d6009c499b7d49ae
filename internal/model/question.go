package model

// Question is one scenario of the questionnaire with its four options
type Question struct {
	ID       int                    `json:"id" yaml:"id"`
	Scenario string                 `json:"scenario" yaml:"scenario"`
	Options  map[OptionLabel]string `json:"options" yaml:"options"`
}

// Option returns the text of the given label
func (q Question) Option(l OptionLabel) string {
	return q.Options[l]
}
