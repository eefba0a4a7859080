package routepath

import "strings"

// NormalizeBase turns a configured base path into the form used for
// prefixing: a leading slash, no trailing slash, and "" for the root.
//
//	""        → ""
//	"/"       → ""
//	"loja"    → "/loja"
//	"/loja/"  → "/loja"
//
// A full URL keeps only its path part.
func NormalizeBase(base string) (string, error) {
	if i := strings.Index(base, "://"); i >= 0 {
		rest := base[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			base = rest[j:]
		} else {
			base = ""
		}
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return "", nil
	}
	canonical, err := Canonicalize(base)
	if err != nil {
		return "", err
	}
	if canonical == "/" {
		return "", nil
	}
	return canonical, nil
}

// JoinBase prefixes an application path with a normalized base.
func JoinBase(base, fullPath string) string {
	if fullPath == "" {
		fullPath = "/"
	}
	if base == "" {
		return fullPath
	}
	if fullPath == "/" {
		return base + "/"
	}
	return base + fullPath
}

// StripBase removes a normalized base from a request path. The second
// result is false when urlPath lies outside the base.
func StripBase(base, urlPath string) (string, bool) {
	if urlPath == "" {
		urlPath = "/"
	}
	if base == "" {
		return urlPath, true
	}
	if urlPath == base {
		return "/", true
	}
	if !strings.HasPrefix(urlPath, base+"/") {
		return "", false
	}
	return urlPath[len(base):], true
}

// BaseHref returns the base as a <base href> value, which must end in "/".
func BaseHref(base string) string {
	return base + "/"
}
