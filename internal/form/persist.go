package form

import (
	"errors"
	"fmt"

	"github.com/treykane/cli-gearing/internal/store"
)

// Restore loads every field present in kv without notifying listeners.
// Empty stored values are skipped.
func (f *Form) Restore(kv store.KV) {
	for _, field := range Fields() {
		v, ok := kv.Get(field.Key())
		if !ok || v == "" {
			continue
		}
		if field.IsToggle() && v != "true" && v != "false" {
			continue
		}
		f.values[field] = v
	}
}

// Persist writes field to kv. Empty values are never written, and the
// internal ratio is left untouched while the transmission is bypassed so the
// last real ratio survives.
func (f *Form) Persist(kv store.KV, field Field) error {
	if field == FieldInternal && f.NoTransmission() {
		return nil
	}
	v := f.values[field]
	if field.IsToggle() {
		v = fmt.Sprint(f.NoTransmission())
	}
	if v == "" {
		return nil
	}
	if err := kv.Set(field.Key(), v); err != nil {
		return fmt.Errorf("persist %s: %w", field, err)
	}
	return nil
}

// PersistAll writes every field and joins the errors.
func (f *Form) PersistAll(kv store.KV) error {
	var errs []error
	for _, field := range Fields() {
		if err := f.Persist(kv, field); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reset clears every numeric field and the bypass flag, notifying listeners
// for each field that changed.
func (f *Form) Reset() {
	for _, field := range Fields() {
		if field.IsToggle() {
			f.SetNoTransmission(false)
			continue
		}
		f.Set(field, "")
	}
}
