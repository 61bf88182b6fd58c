package utils

import (
	"context"
	"io"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// DeferredClose closes closer and logs an error if it can't close it.
func DeferredClose(ctx context.Context, closer io.Closer, errMsg string) {
	if err := closer.Close(); err != nil {
		log.Ctx(ctx).Errorf("%s: %v", errMsg, err)
	}
}

// MapSlice returns the result of applying f to every element of a.
func MapSlice[T any, M any](a []T, f func(T) M) []M {
	n := make([]M, len(a))
	for i, e := range a {
		n[i] = f(e)
	}
	return n
}
