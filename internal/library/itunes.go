package library

import (
	"encoding/xml"
	"io"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/tags"
)

// LoadITunesXML reads the track locations from an iTunes/Music library export.
func LoadITunesXML(fsys afero.Fs, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open iTunes library")
	}
	defer f.Close()
	return ParseITunesXML(f)
}

// ParseITunesXML extracts the local file paths of music tracks from an
// iTunes library plist. Every <key>Location</key> is followed by a
// file:// URL string; remote streams and non-music files are ignored.
func ParseITunesXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paths       []string
		seen        = make(map[string]bool)
		inKey       bool
		inString    bool
		afterLocKey bool
		text        strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parse iTunes library")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			text.Reset()
			switch t.Name.Local {
			case "key":
				inKey = true
			case "string":
				inString = true
			default:
				afterLocKey = false
			}
		case xml.CharData:
			if inKey || inString {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "key":
				inKey = false
				afterLocKey = text.String() == "Location"
			case "string":
				inString = false
				if afterLocKey {
					if p, ok := locationToPath(text.String()); ok && tags.IsMusicFile(p) && !seen[p] {
						seen[p] = true
						paths = append(paths, p)
					}
				}
				afterLocKey = false
			}
		}
	}

	return paths, nil
}

// locationToPath converts an iTunes Location URL to a local path.
func locationToPath(loc string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(loc))
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	p := u.Path
	// file://localhost/C:/Music/... on Windows
	if runtime.GOOS == "windows" && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), p != ""
}
