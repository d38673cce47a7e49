package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	domq "github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/search/result"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
)

type printer struct {
	w      io.Writer
	asJSON bool
}

func newPrinter(c *cli.Context) *printer {
	return &printer{w: c.App.Writer, asJSON: c.Bool("json")}
}

type jsonQuestion struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Images   []string `json:"images,omitempty"`
	Answers  []string `json:"answers,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Score    float64  `json:"score,omitempty"`
}

func toJSONQuestion(q *domq.Question, score float64) jsonQuestion {
	return jsonQuestion{
		ID:       q.ID(),
		Category: q.Category(),
		Text:     q.Text(),
		Images:   q.Images(),
		Answers:  q.Answers(),
		Keywords: q.Keywords(),
		Score:    score,
	}
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (p *printer) results(results []result.Result, total int, mode string, scores bool) error {
	if p.asJSON {
		items := make([]jsonQuestion, len(results))
		for i := range results {
			q := results[i].Question()
			items[i] = toJSONQuestion(&q, results[i].Score())
		}
		return p.encode(map[string]any{"items": items, "total": total, "mode": mode})
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(p.w, "no matches")
		return err
	}
	for i := range results {
		q := results[i].Question()
		var err error
		if scores {
			_, err = fmt.Fprintf(p.w, "%5d  %7.2f  [%s] %s\n", q.ID(), results[i].Score(), q.Category(), q.Text())
		} else {
			_, err = fmt.Fprintf(p.w, "%5d  [%s] %s\n", q.ID(), q.Category(), q.Text())
		}
		if err != nil {
			return err
		}
	}
	if total > len(results) {
		_, err := fmt.Fprintf(p.w, "(%d of %d)\n", len(results), total)
		return err
	}
	return nil
}

func (p *printer) categories(cats []questionuc.CategoryInfo) error {
	if p.asJSON {
		type item struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Questions int    `json:"questions"`
		}
		items := make([]item, len(cats))
		for i := range cats {
			items[i] = item{ID: cats[i].Category.ID(), Name: cats[i].Category.Name(), Questions: cats[i].Questions}
		}
		return p.encode(items)
	}

	for i := range cats {
		if _, err := fmt.Fprintf(p.w, "%-16s %5d  %s\n",
			cats[i].Category.ID(), cats[i].Questions, cats[i].Category.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) question(q *domq.Question) error {
	if p.asJSON {
		return p.encode(toJSONQuestion(q, 0))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#%d [%s]\n%s\n", q.ID(), q.Category(), q.Text())
	for _, a := range q.Answers() {
		fmt.Fprintf(&b, "\n  %s\n", a)
	}
	if len(q.Images()) > 0 {
		fmt.Fprintf(&b, "\nimages: %s\n", strings.Join(q.Images(), ", "))
	}
	if len(q.Keywords()) > 0 {
		fmt.Fprintf(&b, "keywords: %s\n", strings.Join(q.Keywords(), ", "))
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) published(key string, questions, categories int, fingerprint uint64) error {
	if p.asJSON {
		return p.encode(map[string]any{
			"key":         key,
			"questions":   questions,
			"categories":  categories,
			"fingerprint": fmt.Sprintf("%x", fingerprint),
		})
	}
	_, err := fmt.Fprintf(p.w, "published %d questions in %d categories to %s (%x)\n",
		questions, categories, key, fingerprint)
	return err
}
