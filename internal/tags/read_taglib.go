package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads M4A and FLAC metadata using TagLib as fallback
// when dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	track, _ := parseNumberPair(tags.get(taglib.TrackNumber))

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist, taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		Year:        parseYear(tags.get(taglib.Date)),
		TrackNumber: track,
	}
	t.fillMissing()
	return t, nil
}
