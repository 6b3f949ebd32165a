package form

import "iter"

// Data is a single completed form entry.
type Data struct {
	Name string
	// IsFile is set when the part carried a filename parameter, even an empty one.
	IsFile   bool
	Filename string
	// Type is the MIME of an uploaded file. Empty for ordinary fields.
	Type    string
	Charset string
	// Value holds the value of an ordinary field. Files are streamed into the upload
	// callback instead, therefore their Value is always empty.
	Value string
	// Size is the number of bytes in the part's body.
	Size uint64
}

// Form is an ordered sequence of entries. Duplicate names are legal and all kept.
type Form []Data

// Name returns the first Data matching the name.
func (f Form) Name(name string) (Data, bool) {
	for data := range f.Names(name) {
		return data, true
	}

	return Data{}, false
}

// Names returns an iterator over all Data matching the name.
func (f Form) Names(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Name == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}

// File returns the first uploaded file, sent under the field name.
func (f Form) File(name string) (Data, bool) {
	for data := range f.Files(name) {
		return data, true
	}

	return Data{}, false
}

// Files returns an iterator over all uploaded files, sent under the field name.
func (f Form) Files(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for data := range f.Names(name) {
			if data.IsFile && !yield(data) {
				break
			}
		}
	}
}

// Has tells whether there's at least a single entry with the name.
func (f Form) Has(name string) bool {
	_, found := f.Name(name)
	return found
}

// Value returns the value of the first non-file entry with the name, otherwise or.
func (f Form) Value(name, or string) string {
	for data := range f.Names(name) {
		if !data.IsFile {
			return data.Value
		}
	}

	return or
}

// Fields returns an iterator over all ordinary (non-file) entries.
func (f Form) Fields() iter.Seq[Data] {
	return f.filter(false)
}

// Uploads returns an iterator over all file entries.
func (f Form) Uploads() iter.Seq[Data] {
	return f.filter(true)
}

func (f Form) filter(files bool) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.IsFile == files && !yield(entry) {
				break
			}
		}
	}
}
