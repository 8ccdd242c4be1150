package postgres

import "github.com/google/uuid"

// newID returns a UUIDv7 so primary keys follow insertion order.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
