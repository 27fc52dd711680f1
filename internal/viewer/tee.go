package viewer

import (
	"errors"

	"github.com/hay-kot/markview/internal/core/page"
)

// Viewer is the publish contract shared by all viewers.
type Viewer interface {
	SetBackground(bg page.RGB)
	Load(p page.Page) error
}

// Tee fans a publish out to several viewers. Every viewer is fed even when an
// earlier one fails; the errors are joined.
type Tee []Viewer

func (t Tee) SetBackground(bg page.RGB) {
	for _, v := range t {
		v.SetBackground(bg)
	}
}

func (t Tee) Load(p page.Page) error {
	var errs []error
	for _, v := range t {
		if err := v.Load(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
