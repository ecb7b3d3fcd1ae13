// Package vocabulary reads vocabulary files:
//
//	{"vocabulary": {"groups": [{"id": 1, "name": {"en": "...", "ru": "..."},
//	  "version": 1, "words": [{"id": 1, "gr": "...", "en": "...", "ru": "..."}]}]}}
package vocabulary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/wordflash/internal/models"
)

type File struct {
	Vocabulary Vocabulary `json:"vocabulary" validate:"required"`
}

type Vocabulary struct {
	Groups []Group `json:"groups" validate:"required,min=1,unique=ID,dive"`
}

type LocalizedName struct {
	En string `json:"en"`
	Ru string `json:"ru"`
}

type Group struct {
	ID      int           `json:"id" validate:"gte=0"`
	Name    LocalizedName `json:"name"`
	Version int           `json:"version" validate:"gte=1"`
	Words   []Word        `json:"words" validate:"unique=ID,dive"`
}

type Word struct {
	ID int    `json:"id" validate:"gte=0"`
	Gr string `json:"gr" validate:"required"`
	En string `json:"en"`
	Ru string `json:"ru"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates a vocabulary file.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("invalid vocabulary: %s", strings.Join(msgs, ", "))
		}
		return nil, err
	}
	return &f, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// Model converts the group header.
func (g Group) Model() models.Group {
	return models.Group{
		ID:      g.ID,
		Version: g.Version,
		NameEn:  g.Name.En,
		NameRu:  g.Name.Ru,
	}
}

// ModelWords converts the words of g, assigning composite ids.
func (g Group) ModelWords() []models.Word {
	out := make([]models.Word, 0, len(g.Words))
	for _, w := range g.Words {
		out = append(out, models.Word{
			CompositeID: models.CompositeWordID(g.ID, w.ID),
			GroupID:     g.ID,
			LocalID:     w.ID,
			Greek:       w.Gr,
			English:     w.En,
			Russian:     w.Ru,
		})
	}
	return out
}
