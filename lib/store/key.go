package store

import (
	"path"
	"strings"
)

const (
	// MetaPrefix starts the name of every hive level cell. Comb identifiers must not start with it,
	// so hive level cells ({hive}/_x) and combs ({hive}/x/...) never share a path segment.
	MetaPrefix = "_"

	// CatalogCell is the name of the hive level cell holding a hive's catalog.
	CatalogCell = MetaPrefix + "catalog"
)

// NormalizeKey returns the canonical form of a resource key: slash separated,
// cleaned, without leading or trailing slashes. The empty key stays empty.
func NormalizeKey(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	cleaned := path.Clean("/" + key)
	return strings.Trim(cleaned, "/")
}

// Key builds the resource key of a cell. Empty parts are skipped, so Key(hive, "", CatalogCell)
// addresses a hive level cell.
func Key(hive, comb, cell string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{hive, comb, cell} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return NormalizeKey(strings.Join(parts, "/"))
}

// ValidateName checks a hive, comb or cell name. Names become path segments,
// so they must not be empty, contain separators or quotes, or be a relative segment.
func ValidateName(kind, name string) error {
	switch {
	case name == "":
		return Errorf(RetCInvalidOperation, "%s name must not be empty", kind)
	case name == "." || name == "..":
		return Errorf(RetCInvalidOperation, "%s name %q is not allowed", kind, name)
	case strings.ContainsAny(name, "/\\'\"\x00"):
		return Errorf(RetCInvalidOperation, "%s name %q contains an invalid character", kind, name)
	}
	return nil
}

// ValidateMetaName checks the name of a hive level cell: a valid name starting with MetaPrefix.
func ValidateMetaName(name string) error {
	if err := ValidateName("meta cell", name); err != nil {
		return err
	}
	if !strings.HasPrefix(name, MetaPrefix) || name == MetaPrefix {
		return Errorf(RetCInvalidOperation, "meta cell name %q must start with %q", name, MetaPrefix)
	}
	return nil
}

// Split returns the first segment of a normalized key and the rest.
func Split(key string) (head, rest string) {
	head, rest, _ = strings.Cut(NormalizeKey(key), "/")
	return head, rest
}

// CheckCellKey returns the normalized key if it addresses a cell: at least a hive and a cell name.
func CheckCellKey(key string) (string, error) {
	key = NormalizeKey(key)
	if !strings.Contains(key, "/") {
		return "", Errorf(RetCInvalidOperation, "%q is not a cell key", key)
	}
	return key, nil
}
