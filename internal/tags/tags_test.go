package tags

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestIsMusicFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"a/b/track.flac", true},
		{"track.m4a", true},
		{"video.mp4", true},
		{"take.wav", true},
		{"cover.jpg", false},
		{"notes", false},
		{"archive.mp3.zip", false},
	}
	for _, tt := range tests {
		if got := IsMusicFile(tt.path); got != tt.want {
			t.Errorf("IsMusicFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFromPath(t *testing.T) {
	path := filepath.Join("music", "Daft Punk", "Discovery", "01 One More Time.mp3")
	got := FromPath(path)

	if got.Title != "01 One More Time" {
		t.Errorf("Title = %q, want %q", got.Title, "01 One More Time")
	}
	if got.Album != "Discovery" {
		t.Errorf("Album = %q, want %q", got.Album, "Discovery")
	}
	if got.Artist != "Daft Punk" {
		t.Errorf("Artist = %q, want %q", got.Artist, "Daft Punk")
	}
}

func TestFromPath_BareFile(t *testing.T) {
	got := FromPath("track.flac")
	if got.Title != "track" {
		t.Errorf("Title = %q, want %q", got.Title, "track")
	}
	if got.Album != "" || got.Artist != "" {
		t.Errorf("Album/Artist = %q/%q, want empty", got.Album, got.Artist)
	}
}

func TestParseNumberPair(t *testing.T) {
	tests := []struct {
		in         string
		num, total int
	}{
		{"", 0, 0},
		{"5", 5, 0},
		{"5/12", 5, 12},
		{" 3 / 9 ", 3, 9},
		{"x/y", 0, 0},
	}
	for _, tt := range tests {
		num, total := parseNumberPair(tt.in)
		if num != tt.num || total != tt.total {
			t.Errorf("parseNumberPair(%q) = %d, %d, want %d, %d", tt.in, num, total, tt.num, tt.total)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{"": 0, "1999": 1999, "2001-03-12": 2001, "abcd": 0}
	for in, want := range tests {
		if got := parseYear(in); got != want {
			t.Errorf("parseYear(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestRead_MP3WithID3(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Artist Dir", "Album Dir", "test.mp3")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	// Minimal MP3 frame (MPEG1 Layer3, 128kbps, 44100Hz, stereo)
	frame := make([]byte, 417)
	frame[0], frame[1], frame[2] = 0xff, 0xfb, 0x90
	if err := os.WriteFile(path, frame, 0o600); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: false})
	if err != nil {
		t.Fatal(err)
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle("Bohemian Rhapsody")
	tag.SetArtist("Queen")
	tag.SetAlbum("A Night at the Opera")
	tag.SetYear("1975")
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	tag.Close()

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Title != "Bohemian Rhapsody" {
		t.Errorf("Title = %q, want %q", got.Title, "Bohemian Rhapsody")
	}
	if got.Artist != "Queen" {
		t.Errorf("Artist = %q, want %q", got.Artist, "Queen")
	}
	if got.Album != "A Night at the Opera" {
		t.Errorf("Album = %q, want %q", got.Album, "A Night at the Opera")
	}
	if got.Year != 1975 {
		t.Errorf("Year = %d, want 1975", got.Year)
	}
}

func writeTestWAV(t *testing.T, path string, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format); err != nil {
		t.Fatal(err)
	}
}

func TestReadAudioInfo_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	writeTestWAV(t, path, 2*time.Second)

	info, err := ReadAudioInfo(path)
	if err != nil {
		t.Fatalf("ReadAudioInfo() error = %v", err)
	}
	if info.Format != "WAV" {
		t.Errorf("Format = %q, want WAV", info.Format)
	}
	if info.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", info.SampleRate)
	}
	if info.Duration != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", info.Duration)
	}
}

func TestReadWithAudio_UntaggedFallsBackToPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Band", "Demo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "jam.wav")
	writeTestWAV(t, path, time.Second)

	info, err := ReadWithAudio(path)
	if err != nil {
		t.Fatalf("ReadWithAudio() error = %v", err)
	}
	if info.Title != "jam" || info.Artist != "Band" || info.Album != "Demo" {
		t.Errorf("got %q/%q/%q, want jam/Band/Demo", info.Title, info.Artist, info.Album)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
}

func TestReadAudioInfo_Unsupported(t *testing.T) {
	_, err := ReadAudioInfo("notes.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ReadAudioInfo(txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSkipID3v2(t *testing.T) {
	// 10-byte header declaring a 4-byte body, then payload
	data := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 4}, []byte("xxxxfLaC")...)
	r := bytes.NewReader(data)
	if err := SkipID3v2(r); err != nil {
		t.Fatalf("SkipID3v2() error = %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "fLaC" {
		t.Errorf("remaining = %q, want %q", rest, "fLaC")
	}

	plain := bytes.NewReader([]byte("fLaC0000000000"))
	if err := SkipID3v2(plain); err != nil {
		t.Fatalf("SkipID3v2() error = %v", err)
	}
	if pos, _ := plain.Seek(0, io.SeekCurrent); pos != 0 {
		t.Errorf("position = %d, want 0 for untagged input", pos)
	}
}
