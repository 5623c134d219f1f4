package service

import "sync"

// PickerField is the in-memory value of a file-picker control. Adapters that
// render a real control mirror Value into it.
type PickerField struct {
	mu    sync.Mutex
	value string
}

// NewPickerField creates an empty picker
func NewPickerField() *PickerField {
	return &PickerField{}
}

func (p *PickerField) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set records the value the platform displays after the user picks a file.
func (p *PickerField) Set(value string) {
	p.mu.Lock()
	p.value = value
	p.mu.Unlock()
}

// Reset empties the displayed value so the same file can be offered again.
func (p *PickerField) Reset() {
	p.Set("")
}
