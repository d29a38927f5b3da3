// Package hashgate implements C6: deciding whether a build is actually
// necessary by fingerprinting every input file plus a handful of
// metadata values, and persisting that fingerprint map once the build
// succeeds.
//
// The digest algorithm itself (sha256) and the atomic persistence
// (temp file + rename) are both plain standard library — no example
// repo in the corpus carries a dedicated content-fingerprinting or
// atomic-file-write library, and crypto/sha256 plus os.Rename already
// give the determinism and atomicity the gate needs.
package hashgate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/yaoapp/gou/application"
)

// MissingSentinel is the fingerprint value recorded for an input file
// that does not exist.
const MissingSentinel = "missing"

// Fingerprints maps an input path, or a metadata key, to its digest (or
// literal value, for metadata).
type Fingerprints map[string]string

// Inputs bundles the files and metadata the gate fingerprints, plus the
// output paths (OutputFiles is not fingerprinted).
type Inputs struct {
	ConfigFiles  []string
	UserDataFile string
	ScriptVersion string
	SkinDir       string
	HostVersion   string
	OutputFiles   []string
}

// Generate computes the current fingerprint map for inputs.
func Generate(inputs Inputs) (Fingerprints, error) {
	out := Fingerprints{}

	for _, path := range inputs.ConfigFiles {
		digest, err := digestFile(path)
		if err != nil {
			return nil, err
		}
		out[path] = digest
	}

	if inputs.UserDataFile != "" {
		digest, err := digestFile(inputs.UserDataFile)
		if err != nil {
			return nil, err
		}
		out[inputs.UserDataFile] = digest
	}

	out["script_version"] = inputs.ScriptVersion
	out["skin_dir"] = inputs.SkinDir
	out["host_version"] = inputs.HostVersion

	return out, nil
}

func digestFile(path string) (string, error) {
	exists, err := application.App.Exists(path)
	if err != nil {
		return "", err
	}
	if !exists {
		return MissingSentinel, nil
	}
	data, err := application.App.Read(path)
	if err != nil {
		return "", err
	}
	return Digest(data), nil
}

// Digest returns the hex content digest used for every fingerprinted
// file.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NeedsRebuild reports whether a build must run: any output missing, no
// stored fingerprint file, or any fingerprint mismatched.
func NeedsRebuild(fingerprintPath string, current Fingerprints, outputFiles []string) (bool, error) {
	for _, out := range outputFiles {
		exists, err := application.App.Exists(out)
		if err != nil {
			return false, err
		}
		if !exists {
			return true, nil
		}
	}

	stored, ok, err := Load(fingerprintPath)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	if len(stored) != len(current) {
		return true, nil
	}
	for k, v := range current {
		if stored[k] != v {
			return true, nil
		}
	}
	return false, nil
}

// Load reads a previously persisted fingerprint map. ok is false when
// the file does not exist.
func Load(path string) (Fingerprints, bool, error) {
	exists, err := application.App.Exists(path)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	data, err := application.App.Read(path)
	if err != nil {
		return nil, false, err
	}
	var fp Fingerprints
	if err := json.Unmarshal(data, &fp); err != nil {
		return nil, false, nil
	}
	return fp, true, nil
}

// Persist atomically writes fp to path: write-to-temporary-then-rename,
// in the same directory so the rename is guaranteed to be on the same
// filesystem.
func Persist(path string, fp Fingerprints) error {
	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fingerprint-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
