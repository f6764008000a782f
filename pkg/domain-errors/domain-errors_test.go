package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives shared by clients,
// services, and handlers.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "card details not found"}
		s.Equal("card details not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUnavailable}
		s.Equal("unavailable", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("dial tcp: connection refused")
		err := &Error{Code: CodeUnavailable, Message: "cards unavailable", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeNotFound, Message: "cards not found"}
		err2 := &Error{Code: CodeNotFound, Message: "loans not found"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		s.False((&Error{Code: CodeNotFound}).Is(&Error{Code: CodeTimeout}))
	})

	s.Run("does not match non-domain errors", func() {
		s.False((&Error{Code: CodeNotFound}).Is(errors.New("not found")))
	})

	s.Run("works with errors.Is through fmt wrapping", func() {
		inner := &Error{Code: CodeTimeout, Message: "original"}
		wrapped := fmt.Errorf("fetch customer: %w", inner)
		s.True(errors.Is(wrapped, &Error{Code: CodeTimeout}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code when wrapping domain error", func() {
		original := New(CodeNotFound, "card details not found")
		wrapped := Wrap(original, CodeInternal, "fetch customer details")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeNotFound, domainErr.Code)
		s.Equal("fetch customer details", domainErr.Message)
	})

	s.Run("uses provided code when wrapping non-domain error", func() {
		original := errors.New("i/o timeout")
		wrapped := Wrap(original, CodeTimeout, "cards call timed out")

		s.True(HasCode(wrapped, CodeTimeout))
		s.True(errors.Is(wrapped, original))
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeValidation, CodeOf(New(CodeValidation, "mobile_number is required")))
	s.Equal(CodeUnavailable, CodeOf(fmt.Errorf("outer: %w", New(CodeUnavailable, "down"))))
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
	s.False(HasCode(nil, CodeNotFound))
}
