package app

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/ticktock/internal/storage"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type brokenGetKV struct{ *storage.Memory }

func (brokenGetKV) Get(string) (string, bool, error) { return "", false, errors.New("io error") }
