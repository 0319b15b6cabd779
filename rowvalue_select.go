package baserow

// SingleSelectRowValue wraps a single_select cell. The raw value on read is
// the server's {id, value, color} object; after a local Set it may be a
// plain label or id.
type SingleSelectRowValue struct {
	baseRowValue
}

func (v *SingleSelectRowValue) selectField() *SingleSelectField {
	f, _ := v.field.(*SingleSelectField)
	return f
}

// Options returns the option labels of the underlying field.
func (v *SingleSelectRowValue) Options() []string {
	if f := v.selectField(); f != nil {
		return f.Options()
	}
	return nil
}

// OptionsDetails returns the full option records of the underlying field.
func (v *SingleSelectRowValue) OptionsDetails() []SelectOption {
	if f := v.selectField(); f != nil {
		return f.OptionsDetails()
	}
	return nil
}

// Selected resolves the current value to its option record.
func (v *SingleSelectRowValue) Selected() (SelectOption, bool) {
	f := v.selectField()
	if f == nil || v.raw == nil {
		return SelectOption{}, false
	}
	opt, err := f.resolveOption(v.raw)
	if err != nil {
		return SelectOption{}, false
	}
	return opt, true
}

// Label returns the selected option's label, or empty when unset.
func (v *SingleSelectRowValue) Label() string {
	opt, ok := v.Selected()
	if !ok {
		return ""
	}
	return opt.Value
}

// MultipleSelectRowValue wraps a multiple_select cell. The raw value on
// read is a list of {id, value, color} objects.
type MultipleSelectRowValue struct {
	baseRowValue
}

func (v *MultipleSelectRowValue) selectField() *MultipleSelectField {
	f, _ := v.field.(*MultipleSelectField)
	return f
}

// Options returns the option labels of the underlying field.
func (v *MultipleSelectRowValue) Options() []string {
	if f := v.selectField(); f != nil {
		return f.Options()
	}
	return nil
}

// OptionsDetails returns the full option records of the underlying field.
func (v *MultipleSelectRowValue) OptionsDetails() []SelectOption {
	if f := v.selectField(); f != nil {
		return f.OptionsDetails()
	}
	return nil
}

// Selected resolves the current entries to their option records. Entries
// that do not resolve against the option set are skipped.
func (v *MultipleSelectRowValue) Selected() []SelectOption {
	f := v.selectField()
	if f == nil || v.raw == nil {
		return nil
	}
	var out []SelectOption
	for _, item := range f.asSelectList(v.raw) {
		if opt, err := f.resolveOption(item); err == nil {
			out = append(out, opt)
		}
	}
	return out
}

// Labels returns the selected options' labels.
func (v *MultipleSelectRowValue) Labels() []string {
	selected := v.Selected()
	labels := make([]string, len(selected))
	for i, opt := range selected {
		labels[i] = opt.Value
	}
	return labels
}
