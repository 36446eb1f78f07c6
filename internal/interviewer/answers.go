package interviewer

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ReadAnswersFile loads answers from a YAML or JSON file.
func ReadAnswersFile(path string) ([]Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %q: %w", path, err)
	}

	answers, err := ParseAnswers(data)
	if err != nil {
		return nil, fmt.Errorf("parsing answers file %q: %w", path, err)
	}

	return answers, nil
}

// ParseAnswers accepts either a mapping of question id to answer text
//
//	1: I led the migration...
//	2: Mostly Go and Postgres.
//
// or a list of {question_id, answer} objects. Mappings are returned ordered by
// question id.
func ParseAnswers(data []byte) ([]Answer, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch doc := raw.(type) {
	case nil:
		return nil, errors.New("no answers found")
	case []any:
		var answers []Answer
		if err := mapstructure.WeakDecode(doc, &answers); err != nil {
			return nil, err
		}
		return answers, nil
	case map[string]any:
		generic := make(map[any]any, len(doc))
		for k, v := range doc {
			generic[k] = v
		}
		return answersFromMapping(generic)
	case map[any]any:
		return answersFromMapping(doc)
	default:
		return nil, fmt.Errorf("unexpected answers document of type %T", raw)
	}
}

func answersFromMapping(doc map[any]any) ([]Answer, error) {
	answers := make([]Answer, 0, len(doc))
	for key, value := range doc {
		id, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(key)))
		if err != nil {
			return nil, fmt.Errorf("question id %q is not a number", fmt.Sprint(key))
		}

		var text string
		if err := mapstructure.WeakDecode(value, &text); err != nil {
			return nil, fmt.Errorf("answer to question %d: %w", id, err)
		}

		answers = append(answers, Answer{QuestionID: id, Answer: text})
	}

	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionID < answers[j].QuestionID
	})

	return answers, nil
}
