package repository

import (
	"errors"
	"testing"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrDuplicateEmail, ErrDuplicateGoogle, ErrHotelNotFound, ErrReservationNotFound} {
		if err == nil {
			t.Fatal("sentinel error should not be nil")
		}
	}
	if errors.Is(ErrDuplicateEmail, ErrDuplicateGoogle) {
		t.Fatal("duplicate email and duplicate google must be distinct errors")
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(errors.New(`Error 1062 (23000): Duplicate entry 'a@x.com' for key 'uq_users_email'`)) {
		t.Fatal("MySQL duplicate entry error not detected")
	}
}
