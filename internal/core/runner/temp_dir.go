package runner

import (
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/slidelens/slidelens/internal/utils/log"
)

const TEMP_DIR_PREFIX = "slidelens-"

type TempDirRunner struct{}

// WithTempDir creates basedir/tmp/slidelens-<uuid>, runs the closure inside it
// and removes the directory afterwards
func (s *TempDirRunner) WithTempDir(basedir string, closures func(path string) error) error {
	uuid, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	// create a tmp dir
	tmp_root := path.Join(basedir, "tmp")
	err = os.MkdirAll(tmp_root, 0755)
	if err != nil {
		return err
	}

	tmp_dir := path.Join(tmp_root, TEMP_DIR_PREFIX+uuid.String())
	err = os.Mkdir(tmp_dir, 0700)
	if err != nil {
		return err
	}

	defer func() {
		if err := os.RemoveAll(tmp_dir); err != nil {
			log.Warn("failed to remove temp dir %s: %v", tmp_dir, err)
		}
	}()

	return closures(tmp_dir)
}

func IsTempDirName(name string) bool {
	return strings.HasPrefix(name, TEMP_DIR_PREFIX)
}
