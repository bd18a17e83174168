package cli

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docverifier/internal/common"
)

var errLocked = errors.New("history is locked: wrong PIN")

// unlock asks for the history PIN when one is configured.
func (a *App) unlock(ctx context.Context, reason string) error {
	if !a.lock.Enabled(ctx) {
		return nil
	}
	pin, err := readSecret(ctx, a.in, "History PIN: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)

	if !a.lock.Authenticate(ctx, reason, string(pin)) {
		return errLocked
	}
	return nil
}

func (a *App) Lock(ctx context.Context, args []string) error {
	if len(args) == 0 {
		state := "disabled"
		if a.lock.Enabled(ctx) {
			state = "enabled"
		}
		fmt.Fprintln(a.out, "History lock is", state)
		return nil
	}

	switch args[0] {
	case "set":
		if err := a.unlock(ctx, "change history PIN"); err != nil {
			return err
		}
		pin, err := readSecret(ctx, a.in, "New PIN: ", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pin)
		again, err := readSecret(ctx, a.in, "Repeat PIN: ", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(again)

		if subtle.ConstantTimeCompare(pin, again) != 1 {
			return errors.New("PINs do not match")
		}
		if err := a.lock.SetPIN(ctx, string(pin)); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "History lock enabled")

	case "clear":
		if err := a.unlock(ctx, "remove history PIN"); err != nil {
			return err
		}
		if err := a.lock.ClearPIN(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "History lock disabled")

	default:
		return fmt.Errorf("%w: lock [set|clear]", errUsage)
	}
	return nil
}
