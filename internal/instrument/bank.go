package instrument

import (
	"fmt"

	"leadstyle/internal/model"
)

// Count returns the number of questions in the bank
func (i *Instrument) Count() int {
	return len(i.questions)
}

// Questions returns the bank ordered by question id
func (i *Instrument) Questions() []model.Question {
	out := make([]model.Question, len(i.questions))
	for n, q := range i.questions {
		out[n] = copyQuestion(q)
	}
	return out
}

// Question returns a single question by id
func (i *Instrument) Question(id int) (model.Question, error) {
	n, ok := i.index[id]
	if !ok {
		return model.Question{}, fmt.Errorf("%w: %d", ErrQuestionNotFound, id)
	}
	return copyQuestion(i.questions[n]), nil
}

// HasQuestion reports whether id belongs to the bank
func (i *Instrument) HasQuestion(id int) bool {
	_, ok := i.index[id]
	return ok
}

// QuestionIDs returns every id in bank order
func (i *Instrument) QuestionIDs() []int {
	ids := make([]int, len(i.questions))
	for n, q := range i.questions {
		ids[n] = q.ID
	}
	return ids
}

func copyQuestion(q model.Question) model.Question {
	opts := make(map[model.OptionLabel]string, len(q.Options))
	for k, v := range q.Options {
		opts[k] = v
	}
	q.Options = opts
	return q
}
