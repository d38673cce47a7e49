package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/cribdex/internal/domain"
	domcorpus "github.com/kailas-cloud/cribdex/internal/domain/corpus"
	"github.com/kailas-cloud/cribdex/internal/domain/question"
)

// Format is the serialization of a corpus document.
type Format string

// Supported corpus formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// corpusFile is the on-disk and in-store shape of a corpus document.
type corpusFile struct {
	Categories []categoryRow `json:"categories" yaml:"categories"`
	Questions  []questionRow `json:"questions" yaml:"questions"`
}

type categoryRow struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

type questionRow struct {
	ID       int      `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Text     string   `json:"text" yaml:"text"`
	Images   []string `json:"images,omitempty" yaml:"images,omitempty"`
	Answers  []string `json:"answers,omitempty" yaml:"answers,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Decode parses a corpus document. The fingerprint is the xxhash of data.
// Malformed documents and duplicate IDs wrap domain.ErrInvalidCorpus.
func Decode(data []byte, format Format) (*domcorpus.Corpus, error) {
	var file corpusFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%w: parse json: %w", domain.ErrInvalidCorpus, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %w", domain.ErrInvalidCorpus, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidCorpus, format)
	}

	return fromFile(&file, xxhash.Sum64(data))
}

func fromFile(file *corpusFile, fingerprint uint64) (*domcorpus.Corpus, error) {
	categories := make([]question.Category, 0, len(file.Categories))
	for _, row := range file.Categories {
		cat, err := question.NewCategory(row.ID, row.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: category: %w", domain.ErrInvalidCorpus, err)
		}
		categories = append(categories, cat)
	}

	questions := make([]question.Question, 0, len(file.Questions))
	for i, row := range file.Questions {
		q, err := question.New(row.ID, row.Category, row.Text, row.Images, row.Answers, row.Keywords)
		if err != nil {
			return nil, fmt.Errorf("%w: question #%d (id %d): %w", domain.ErrInvalidCorpus, i, row.ID, err)
		}
		questions = append(questions, q)
	}

	c, err := domcorpus.New(categories, questions, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}
	return c, nil
}

// Encode serializes a corpus as canonical JSON.
func Encode(c *domcorpus.Corpus) ([]byte, error) {
	file := corpusFile{
		Categories: make([]categoryRow, 0, len(c.Categories())),
		Questions:  make([]questionRow, 0, c.Len()),
	}
	for _, cat := range c.Categories() {
		file.Categories = append(file.Categories, categoryRow{ID: cat.ID(), Name: cat.Name()})
	}
	for _, q := range c.Questions() {
		file.Questions = append(file.Questions, questionRow{
			ID:       q.ID(),
			Category: q.Category(),
			Text:     q.Text(),
			Images:   q.Images(),
			Answers:  q.Answers(),
			Keywords: q.Keywords(),
		})
	}

	data, err := json.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal corpus: %w", err)
	}
	return data, nil
}
