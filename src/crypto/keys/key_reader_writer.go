package keys

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
)

// KeyReaderWriter reads and writes key-pairs from/to any format or support.
type KeyReaderWriter interface {
	ReadKey() (*Full, error)
	WriteKey(*Full) error
}

// SimpleKeyfile implements KeyReaderWriter with unencrypted files containing
// the S... seed of the key-pair.
type SimpleKeyfile struct {
	l       sync.Mutex
	keyfile string
}

// NewSimpleKeyfile instantiates a new SimpleKeyfile with an underlying file
func NewSimpleKeyfile(keyfile string) *SimpleKeyfile {
	simpleKeyfile := &SimpleKeyfile{
		keyfile: keyfile,
	}

	return simpleKeyfile
}

// CheckFileInfo verifies that the file exists and has user permissions only.
func (k *SimpleKeyfile) CheckFileInfo() error {
	info, err := os.Stat(k.keyfile)
	if err != nil {
		return err
	}

	// get file permissions
	perm := info.Mode().Perm()

	// build 000111111 mask
	var nonUserMask os.FileMode = (1 << 6) - 1

	// get permissions for 'groups' and 'others'
	nonUserPerm := perm & nonUserMask

	if nonUserPerm != 0 {
		return fmt.Errorf("key file permissions should exclude 'groups' and 'others'. Got %o", perm)
	}

	return nil
}

// ReadKey implements KeyReaderWriter. It reads the seed written by WriteKey.
func (k *SimpleKeyfile) ReadKey() (*Full, error) {
	k.l.Lock()
	defer k.l.Unlock()

	if err := k.CheckFileInfo(); err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(k.keyfile)
	if err != nil {
		return nil, err
	}

	return ParseFull(strings.TrimSpace(string(buf)))
}

// WriteKey implements KeyReaderWriter. It writes the S... seed of the key to
// the underlying file.
func (k *SimpleKeyfile) WriteKey(key *Full) error {
	k.l.Lock()
	defer k.l.Unlock()

	if err := os.MkdirAll(path.Dir(k.keyfile), 0700); err != nil {
		return err
	}

	return os.WriteFile(k.keyfile, []byte(key.Seed()), 0600)
}
