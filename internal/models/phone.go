package models

// Phone is a row of the phones table. A phone row may be shared by several
// clients and may outlive all of them.
type Phone struct {
	ID     int64
	Number string
}
