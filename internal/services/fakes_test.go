package services

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/dmitrijs2005/clientdb/internal/common"
	"github.com/dmitrijs2005/clientdb/internal/dbx"
	"github.com/dmitrijs2005/clientdb/internal/models"
	"github.com/dmitrijs2005/clientdb/internal/opt"
	"github.com/dmitrijs2005/clientdb/internal/repositories/clients"
	"github.com/dmitrijs2005/clientdb/internal/repositories/phones"
)

// fakeStore mimics the three tables and their constraints in memory.
type fakeStore struct {
	nextClientID int64
	nextPhoneID  int64
	nextLinkID   int64

	clients map[int64]models.Client
	phones  map[int64]string
	links   []fakeLink

	// errs makes the named repository method fail.
	errs map[string]error
}

type fakeLink struct {
	id       int64
	clientID int64
	phoneID  int64
}

func newFakeStore() *fakeStore {
	s := &fakeStore{}
	s.reset()
	return s
}

func (s *fakeStore) reset() {
	s.nextClientID, s.nextPhoneID, s.nextLinkID = 0, 0, 0
	s.clients = map[int64]models.Client{}
	s.phones = map[int64]string{}
	s.links = nil
	s.errs = map[string]error{}
}

func (s *fakeStore) phoneID(number string) (int64, bool) {
	for id, n := range s.phones {
		if n == number {
			return id, true
		}
	}
	return 0, false
}

func (s *fakeStore) linksOf(clientID int64) []fakeLink {
	var out []fakeLink
	for _, l := range s.links {
		if l.clientID == clientID {
			out = append(out, l)
		}
	}
	return out
}

func (s *fakeStore) dropLinks(keep func(fakeLink) bool) {
	s.links = slices.DeleteFunc(s.links, func(l fakeLink) bool { return !keep(l) })
}

type fakeClients struct{ s *fakeStore }

func (f *fakeClients) Create(_ context.Context, c *models.Client) (*models.Client, error) {
	if err := f.s.errs["Create"]; err != nil {
		return nil, err
	}
	if c.Email != "" {
		for id, existing := range f.s.clients {
			if existing.Email == c.Email {
				c.ID = id
				return c, nil
			}
		}
	}
	f.s.nextClientID++
	c.ID = f.s.nextClientID
	f.s.clients[c.ID] = *c
	return c, nil
}

func (f *fakeClients) Exists(_ context.Context, id int64) (bool, error) {
	if err := f.s.errs["Exists"]; err != nil {
		return false, err
	}
	_, ok := f.s.clients[id]
	return ok, nil
}

func (f *fakeClients) Update(_ context.Context, id int64, u models.ClientUpdate) error {
	if err := f.s.errs["Update"]; err != nil {
		return err
	}
	c := f.s.clients[id]
	if v, ok := u.FirstName.Get(); ok {
		c.FirstName = v
	}
	if v, ok := u.LastName.Get(); ok {
		c.LastName = v
	}
	if v, ok := u.Email.Get(); ok {
		c.Email = v
	}
	f.s.clients[id] = c
	return nil
}

func (f *fakeClients) Delete(_ context.Context, id int64) error {
	if err := f.s.errs["Delete"]; err != nil {
		return err
	}
	delete(f.s.clients, id)
	f.s.dropLinks(func(l fakeLink) bool { return l.clientID != id })
	return nil
}

func (f *fakeClients) AttachPhone(_ context.Context, clientID, phoneID int64) error {
	if err := f.s.errs["AttachPhone"]; err != nil {
		return err
	}
	for _, l := range f.s.links {
		if l.clientID == clientID && l.phoneID == phoneID {
			return nil
		}
	}
	f.s.nextLinkID++
	f.s.links = append(f.s.links, fakeLink{id: f.s.nextLinkID, clientID: clientID, phoneID: phoneID})
	return nil
}

func (f *fakeClients) DetachPhone(_ context.Context, clientID, phoneID int64) error {
	f.s.dropLinks(func(l fakeLink) bool { return l.clientID != clientID || l.phoneID != phoneID })
	return nil
}

func (f *fakeClients) DetachAllPhones(_ context.Context, clientID int64) error {
	if err := f.s.errs["DetachAllPhones"]; err != nil {
		return err
	}
	f.s.dropLinks(func(l fakeLink) bool { return l.clientID != clientID })
	return nil
}

func (f *fakeClients) Find(_ context.Context, filter models.ClientFilter) ([]models.ClientRecord, error) {
	if err := f.s.errs["Find"]; err != nil {
		return nil, err
	}
	matches := func(field opt.Field[string], value string) bool {
		v, ok := field.Get()
		return !ok || v == value
	}

	ids := make([]int64, 0, len(f.s.clients))
	for id := range f.s.clients {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var out []models.ClientRecord
	for _, id := range ids {
		c := f.s.clients[id]
		var numbers []string
		for _, l := range f.s.linksOf(id) {
			numbers = append(numbers, f.s.phones[l.phoneID])
		}
		if !matches(filter.FirstName, c.FirstName) || !matches(filter.LastName, c.LastName) || !matches(filter.Email, c.Email) {
			continue
		}
		if p, ok := filter.Phone.Get(); ok && !slices.Contains(numbers, p) {
			continue
		}
		out = append(out, models.ClientRecord{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phones:    strings.Join(numbers, models.PhoneSeparator),
		})
	}
	return out, nil
}

type fakePhones struct{ s *fakeStore }

func (f *fakePhones) Upsert(_ context.Context, number string) (*models.Phone, error) {
	if err := f.s.errs["Upsert"]; err != nil {
		return nil, err
	}
	if id, ok := f.s.phoneID(number); ok {
		return &models.Phone{ID: id, Number: number}, nil
	}
	f.s.nextPhoneID++
	f.s.phones[f.s.nextPhoneID] = number
	return &models.Phone{ID: f.s.nextPhoneID, Number: number}, nil
}

func (f *fakePhones) FindByNumber(_ context.Context, number string) (*models.Phone, error) {
	if err := f.s.errs["FindByNumber"]; err != nil {
		return nil, err
	}
	id, ok := f.s.phoneID(number)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Phone{ID: id, Number: number}, nil
}

func (f *fakePhones) Delete(_ context.Context, id int64) error {
	delete(f.s.phones, id)
	f.s.dropLinks(func(l fakeLink) bool { return l.phoneID != id })
	return nil
}

type fakeRepoManager struct {
	s       *fakeStore
	initErr error
	inits   int
}

func (m *fakeRepoManager) InitSchema(context.Context, *sql.DB) error {
	m.inits++
	if m.initErr != nil {
		return m.initErr
	}
	m.s.reset()
	return nil
}

func (m *fakeRepoManager) Clients(dbx.DBTX) clients.Repository { return &fakeClients{s: m.s} }
func (m *fakeRepoManager) Phones(dbx.DBTX) phones.Repository   { return &fakePhones{s: m.s} }
