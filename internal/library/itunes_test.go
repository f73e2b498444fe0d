package library

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLibrary = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Music Folder</key><string>file://localhost/Users/me/Music/</string>
	<key>Tracks</key>
	<dict>
		<key>101</key>
		<dict>
			<key>Track ID</key><integer>101</integer>
			<key>Name</key><string>Rock &amp; Roll</string>
			<key>Location</key><string>file://localhost/Users/me/Music/Led%20Zeppelin/IV/04%20Rock%20%26%20Roll.mp3</string>
		</dict>
		<key>102</key>
		<dict>
			<key>Track ID</key><integer>102</integer>
			<key>Location</key><string>file://localhost/Users/me/Music/Band/Album/02%20Song.m4a</string>
		</dict>
		<key>103</key>
		<dict>
			<key>Track ID</key><integer>103</integer>
			<key>Location</key><string>http://radio.example.com/stream</string>
		</dict>
		<key>104</key>
		<dict>
			<key>Track ID</key><integer>104</integer>
			<key>Location</key><string>file://localhost/Users/me/Music/Movies/clip.mov</string>
		</dict>
		<key>105</key>
		<dict>
			<key>Name</key><string>Location</string>
			<key>Artist</key><string>file://localhost/not/a/location.mp3</string>
		</dict>
	</dict>
</dict>
</plist>`

func TestParseITunesXML(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("paths in sample library are POSIX")
	}

	got, err := ParseITunesXML(strings.NewReader(sampleLibrary))
	require.NoError(t, err)

	want := []string{
		filepath.FromSlash("/Users/me/Music/Led Zeppelin/IV/04 Rock & Roll.mp3"),
		filepath.FromSlash("/Users/me/Music/Band/Album/02 Song.m4a"),
	}
	assert.Equal(t, want, got)
}

func TestParseITunesXML_Malformed(t *testing.T) {
	_, err := ParseITunesXML(strings.NewReader("<plist><dict><key>Location</key>"))
	assert.Error(t, err)
}

func TestLocationToPath(t *testing.T) {
	tests := []struct {
		loc  string
		want string
		ok   bool
	}{
		{"file://localhost/a/b%20c.mp3", filepath.FromSlash("/a/b c.mp3"), true},
		{"file:///a/b.mp3", filepath.FromSlash("/a/b.mp3"), true},
		{"https://example.com/a.mp3", "", false},
		{"file://localhost", "", false},
	}
	for _, tt := range tests {
		got, ok := locationToPath(tt.loc)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("locationToPath(%q) = %q, %v, want %q, %v", tt.loc, got, ok, tt.want, tt.ok)
		}
	}
}
