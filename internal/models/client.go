// Package models defines the records stored by the clients repository.
package models

import (
	"strings"

	"github.com/dmitrijs2005/clientdb/internal/opt"
)

// PhoneSeparator joins phone numbers in an aggregated ClientRecord.
const PhoneSeparator = ", "

// Client is a row of the clients table. An empty Email is stored as NULL.
type Client struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// NewClient describes a client to create together with the phones to attach.
type NewClient struct {
	FirstName string
	LastName  string
	Email     string
	Phones    []string
}

// ClientUpdate lists the changes applied by a client update. Unset fields are
// left untouched. A set Phones replaces every phone of the client, so
// opt.Set([]string{}) detaches them all.
type ClientUpdate struct {
	FirstName opt.Field[string]
	LastName  opt.Field[string]
	Email     opt.Field[string]
	Phones    opt.Field[[]string]
}

// Empty reports whether the update carries no column change.
func (u ClientUpdate) Empty() bool {
	return !u.FirstName.IsSet() && !u.LastName.IsSet() && !u.Email.IsSet()
}

// ClientFilter selects clients by exact match on each set field. Unset
// fields match every client.
type ClientFilter struct {
	FirstName opt.Field[string]
	LastName  opt.Field[string]
	Email     opt.Field[string]
	Phone     opt.Field[string]
}

// ClientRecord is one row of a client search: the client with all of its
// phone numbers folded into Phones, separated by PhoneSeparator.
type ClientRecord struct {
	ID        int64  `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phones    string `json:"phones" yaml:"phones"`
}

// PhoneList splits Phones back into individual numbers.
func (r ClientRecord) PhoneList() []string {
	if r.Phones == "" {
		return nil
	}
	return strings.Split(r.Phones, PhoneSeparator)
}
