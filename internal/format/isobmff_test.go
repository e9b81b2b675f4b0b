package format_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ostafen/sniff/internal/format"
	"github.com/stretchr/testify/require"
)

func ftypBox(major string, compatible ...string) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(16+4*len(compatible)))
	buf.WriteString("ftyp")
	buf.WriteString(major)
	_ = binary.Write(&buf, binary.BigEndian, uint32(0))
	for _, b := range compatible {
		buf.WriteString(b)
	}
	return buf.Bytes()
}

func mdatBox(payload int) []byte {
	box := make([]byte, 8+payload)
	binary.BigEndian.PutUint32(box, uint32(len(box)))
	copy(box[4:], "mdat")
	return box
}

func TestIsISOBMFF(t *testing.T) {
	require.True(t, format.IsISOBMFF(ftypBox("isom", "mp41")))
	require.False(t, format.IsISOBMFF(ftypBox("isom", "mp41")[:19]))
	require.False(t, format.IsISOBMFF([]byte("\x00\x00\x00\x0Efree\x00\x00\x00\x00\x00\x00")))

	odd := ftypBox("isom")
	binary.BigEndian.PutUint32(odd, 14)
	require.False(t, format.IsISOBMFF(odd))
}

func TestBrands(t *testing.T) {
	require.Equal(t, []string{"heic", "mif1", "heic"}, format.Brands(ftypBox("heic", "mif1", "heic")))
	require.Nil(t, format.Brands(mdatBox(16)))

	// a 64-bit sized box ahead of ftyp
	large := make([]byte, 16)
	binary.BigEndian.PutUint32(large, 1)
	copy(large[4:], "free")
	binary.BigEndian.PutUint64(large[8:], 16)
	require.Equal(t, []string{"isom"}, format.Brands(append(large, ftypBox("isom")...)))

	// a zero sized box extends to the end and hides anything after it
	zero := []byte("\x00\x00\x00\x00free")
	require.Nil(t, format.Brands(append(zero, ftypBox("isom")...)))
}

func TestAnalyzeISOBMFF(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want format.ISOBMFFKind
	}{
		{"plain mp4", ftypBox("isom", "iso2", "avc1", "mp41"), format.ISOBMFFGeneric},
		{"avif", ftypBox("avif", "mif1", "miaf"), format.ISOBMFFAVIF},
		{"avif sequence", ftypBox("avis", "msf1"), format.ISOBMFFAVIF},
		{"3gpp", ftypBox("3gp5", "isom"), format.ISOBMFF3GPP},
		{"3gpp compatible", ftypBox("isom", "3gp4"), format.ISOBMFF3GPP},
		{"3gpp2", ftypBox("3g2a"), format.ISOBMFF3GPP2},
		{"audio mp4", ftypBox("M4A ", "M4A ", "mp42", "isom"), format.ISOBMFFAudioMP4},
		{"audio book", ftypBox("M4B "), format.ISOBMFFM4A},
		{"itunes video", ftypBox("M4V ", "M4A ", "mp42"), format.ISOBMFFM4V},
		{"heic", ftypBox("heic", "mif1", "heic"), format.ISOBMFFHEIC},
		{"heic sequence", ftypBox("hevc", "msf1"), format.ISOBMFFHEICSequence},
		{"heic with sequence brand", ftypBox("heic", "mif1", "hevc"), format.ISOBMFFHEICSequence},
		{"heif", ftypBox("mif1", "miaf"), format.ISOBMFFHEIF},
		{"heif with avif codec", ftypBox("mif1", "avif", "miaf"), format.ISOBMFFAVIF},
		{"heif with heic codec", ftypBox("mif1", "heic"), format.ISOBMFFHEIC},
		{"heif with heic codec and sequence", ftypBox("mif1", "heic", "hevc"), format.ISOBMFFHEICSequence},
		{"heif sequence with avif codec", ftypBox("msf1", "avis"), format.ISOBMFFAVIF},
		{"heif sequence with hevc codec", ftypBox("msf1", "hevc"), format.ISOBMFFHEICSequence},
		{"heif sequence", ftypBox("msf1", "iso8"), format.ISOBMFFHEIFSequence},
		{"heif with sequence brand", ftypBox("mif1", "msf1"), format.ISOBMFFHEIFSequence},
		{"motion jpeg 2000", ftypBox("mjp2"), format.ISOBMFFMJ2},
		{"dvb", ftypBox("dvb1"), format.ISOBMFFDVB},
		{"followed by media", append(ftypBox("M4V "), mdatBox(32)...), format.ISOBMFFM4V},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, format.AnalyzeISOBMFF(tc.data))
		})
	}
}

func TestHasMajorBrand(t *testing.T) {
	require.True(t, format.HasMajorBrand(ftypBox("qt  "), "qt  "))
	require.False(t, format.HasMajorBrand(ftypBox("isom", "qt  "), "qt  "))
	require.False(t, format.HasMajorBrand([]byte("\x00\x00\x00\x14ftyp"), "qt  "))
}

func TestAnalyzeISOBMFF_Truncated(t *testing.T) {
	data := append(ftypBox("heic", "mif1", "hevc"), mdatBox(64)...)

	for i := 0; i <= len(data); i++ {
		kind := format.AnalyzeISOBMFF(data[:i])
		require.Contains(t, []format.ISOBMFFKind{format.ISOBMFFGeneric, format.ISOBMFFHEICSequence}, kind)
	}
}
