package contact

import (
	"fmt"
	"slices"
	"strings"
)

// Record holds one contact's data.
type Record struct {
	Name     Name
	Phones   []Phone
	Birthday Birthday
}

// NewRecord creates an empty Record for name.
func NewRecord(name string) (*Record, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	return &Record{Name: n}, nil
}

// AddPhone appends raw if it is a valid phone not already on record.
// Invalid or duplicate input leaves the record unchanged.
func (r *Record) AddPhone(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	if r.indexOf(p.String()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, p)
	}
	r.Phones = append(r.Phones, p)
	return nil
}

// RemovePhone deletes the phone exactly matching phone.
func (r *Record) RemovePhone(phone string) error {
	i := r.indexOf(phone)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, phone)
	}
	r.Phones = slices.Delete(r.Phones, i, i+1)
	return nil
}

// EditPhone replaces old with next, keeping its position in the list.
// The record is untouched when old is absent or next is invalid.
func (r *Record) EditPhone(old, next string) error {
	i := r.indexOf(old)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, old)
	}
	p, err := ParsePhone(next)
	if err != nil {
		return err
	}
	if j := r.indexOf(p.String()); j >= 0 && j != i {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, p)
	}
	r.Phones[i] = p
	return nil
}

// FindPhone returns the phone exactly matching phone.
func (r *Record) FindPhone(phone string) (Phone, error) {
	i := r.indexOf(phone)
	if i < 0 {
		return Phone{}, fmt.Errorf("%w: %q", ErrPhoneNotFound, phone)
	}
	return r.Phones[i], nil
}

// SetBirthday replaces the birthday when raw is a valid date.
func (r *Record) SetBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.Birthday = b
	return nil
}

// PhoneList joins the phones with sep.
func (r *Record) PhoneList(sep string) string {
	parts := make([]string, len(r.Phones))
	for i, p := range r.Phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}

func (r *Record) String() string {
	bday := "none"
	if !r.Birthday.IsZero() {
		bday = r.Birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s", r.Name, r.PhoneList("; "), bday)
}

func (r *Record) indexOf(phone string) int {
	return slices.IndexFunc(r.Phones, func(p Phone) bool { return p.String() == phone })
}
