package sourcemap

import (
	"io"

	"github.com/sirupsen/logrus"

	"go.k6.io/srcmap/lib/fsext"
)

// A Loader builds converters from comments that reference external map files.
// It only works where a filesystem is available.
type Loader struct {
	fs     fsext.Fs
	logger logrus.FieldLogger
}

// NewLoader returns a Loader reading map files from fs. A nil fs means the OS
// filesystem and a nil logger discards everything. The loader only gets a
// read-only view of fs.
func NewLoader(fs fsext.Fs, logger logrus.FieldLogger) *Loader {
	if fs == nil {
		fs = fsext.NewOsFs()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Loader{fs: fsext.NewReadOnlyFs(fs), logger: logger}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

//nolint:gochecknoglobals
var defaultLoader = NewLoader(nil, nil)

// FromMapFileComment reads the map file referenced by comment, resolving its
// path against dir, and parses it.
func (l *Loader) FromMapFileComment(comment, dir string) (*Converter, error) {
	return New(comment, Options{
		IsFileComment:  true,
		CommentFileDir: dir,
		IsJSON:         true,
		FS:             l.fs,
		Logger:         l.logger,
	})
}

// FromMapFileSource finds the last map file comment in content and loads the
// map it references. It returns nil and no error if content has no such
// comment.
func (l *Loader) FromMapFileSource(content, dir string) (*Converter, error) {
	m, ok := MapFile().Last(content)
	if !ok {
		return nil, nil //nolint:nilnil
	}
	return l.FromMapFileComment(m.Text, dir)
}

// readMapFile resolves the map file referenced by comment against dir and
// returns its contents.
func readMapFile(fs fsext.Fs, logger logrus.FieldLogger, comment, dir string) (string, error) {
	filename, ok := GetMapFileCommentValue(comment)
	if !ok {
		return "", ErrNoComment
	}
	path, err := fsext.Resolve(dir, filename)
	if err != nil {
		return "", &FileError{Path: filename, Err: err}
	}

	logger.WithField("path", path).Debug("Reading source map file")
	data, err := fsext.ReadFile(fs, path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	return string(data), nil
}
