package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/passgen"
)

// The caller-visible error taxonomy. Every service method returns one of
// these (possibly wrapped) or an unexpected storage error.
var (
	ErrValidation          = errors.New("validation failed")
	ErrGenerationExhausted = passgen.ErrGenerationExhausted
	ErrDecryptionFailed    = cryptox.ErrDecryptionFailed
	ErrNotFound            = errors.New("not found")
	ErrAlreadyRedeemed     = errors.New("handoff token already redeemed")
	ErrExpired             = errors.New("handoff token expired")
	ErrCredentialExpired   = errors.New("credential expired")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
