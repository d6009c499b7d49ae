package model

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionLabel is one of the four answer labels of a question
type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
	OptionC OptionLabel = "C"
	OptionD OptionLabel = "D"
)

// OptionLabels returns the four labels in display order
func OptionLabels() []OptionLabel {
	return []OptionLabel{OptionA, OptionB, OptionC, OptionD}
}

// Valid reports whether l is one of A, B, C, D
func (l OptionLabel) Valid() bool {
	switch l {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// ParseOptionLabel normalises user input ("b", " C ") into a label
func ParseOptionLabel(s string) (OptionLabel, error) {
	l := OptionLabel(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("invalid option label %q", s)
	}
	return l, nil
}

// AnswerKey identifies one (question, option) pair, written as "12C"
type AnswerKey struct {
	QuestionID int
	Label      OptionLabel
}

func (k AnswerKey) String() string {
	return strconv.Itoa(k.QuestionID) + string(k.Label)
}

// ParseAnswerKey parses the compact "<question><label>" form used by evidence tables
func ParseAnswerKey(s string) (AnswerKey, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return AnswerKey{}, fmt.Errorf("invalid answer key %q", s)
	}
	label := OptionLabel(strings.ToUpper(s[len(s)-1:]))
	if !label.Valid() {
		return AnswerKey{}, fmt.Errorf("invalid answer key %q: label must be A-D", s)
	}
	id, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || id < 1 {
		return AnswerKey{}, fmt.Errorf("invalid answer key %q: bad question id", s)
	}
	return AnswerKey{QuestionID: id, Label: label}, nil
}
