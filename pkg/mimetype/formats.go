// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package mimetype

import (
	"github.com/ostafen/sniff/internal/format"
)

const (
	octetStream = "application/octet-stream"
	plainText   = "text/plain; charset=utf-8"
)

// rootNode declares the whole detection tree. Root formats are mutually
// exclusive, so their order only matters for speed; the order of the
// children of a node is their priority.
func rootNode() *node {
	return newMIME(octetStream, "Binary data", "", func([]byte) bool { return true },
		// binary roots
		newMIME("image/x-xpixmap", "X PixMap", ".xpm", xpm).withKind(Image),
		newMIME("application/x-7z-compressed", "7-Zip archive", ".7z", sevenZ).withKind(Archive),
		zipNode(),
		newMIME("application/pdf", "PDF document", ".pdf", pdf).
			alias("application/x-pdf").withKind(Document),
		newMIME("application/vnd.fdf", "Forms Data Format", ".fdf", fdf).withKind(Document),
		oleNode(),
		newMIME("application/postscript", "PostScript document", ".ps", postscript).withKind(Document),
		newMIME("image/vnd.adobe.photoshop", "Photoshop image", ".psd", psd).
			alias("image/x-psd", "application/photoshop").withKind(Image),
		newMIME("image/x-portable-bitmap", "Portable bitmap", ".pbm", netpbm("P1", "P4")).withKind(Image),
		newMIME("image/x-portable-graymap", "Portable graymap", ".pgm", netpbm("P2", "P5")).withKind(Image),
		newMIME("image/x-portable-pixmap", "Portable pixmap", ".ppm", netpbm("P3", "P6")).withKind(Image),
		newMIME("image/x-portable-arbitrarymap", "Portable arbitrary map", ".pam", netpbm("P7")).withKind(Image),
		newMIME("application/pkcs7-signature", "PKCS #7 signature", ".p7s", p7s).withKind(Application),
		newMIME("application/ogg", "Ogg container", ".ogg", ogg,
			newMIME("audio/ogg", "Ogg audio", ".oga", oggAudio).withKind(Audio),
			newMIME("video/ogg", "Ogg video", ".ogv", oggVideo).withKind(Video),
		).extAlias(".oga", ".opus", ".ogv").withKind(Audio),
		newMIME("image/png", "PNG image", ".png", png,
			newMIME("image/vnd.mozilla.apng", "Animated PNG", ".apng", apng).withKind(Image),
		).withKind(Image),
		newMIME("image/jpeg", "JPEG image", ".jpg", jpg).
			extAlias(".jpeg", ".jpe", ".jif", ".jfif", ".jfi").withKind(Image),
		newMIME("image/jxl", "JPEG XL image", ".jxl", jxl).withKind(Image),
		newMIME("image/jp2", "JPEG 2000 image", ".jp2", jpeg2k("jp2 ")).withKind(Image),
		newMIME("image/jpx", "JPEG 2000 extended image", ".jpx", jpeg2k("jpx ")).withKind(Image),
		newMIME("image/jpm", "JPEG 2000 compound image", ".jpm", jpeg2k("jpm ")).
			alias("video/jpm").withKind(Image),
		newMIME("image/jxs", "JPEG XS image", ".jxs", jxs).withKind(Image),
		newMIME("image/gif", "GIF image", ".gif", gif).withKind(Image),
		newMIME("image/webp", "WebP image", ".webp", webp).withKind(Image),
		newMIME("application/vnd.microsoft.portable-executable", "Windows executable", ".exe", exe).
			withKind(Executable),
		elfNode(),
		newMIME("application/x-archive", "Unix archive", ".a", ar,
			newMIME("application/vnd.debian.binary-package", "Debian package", ".deb", deb).withKind(Archive),
		).alias("application/x-unix-archive").extAlias(".deb").withKind(Archive),
		newContainer("application/x-tar", "Tar archive", ".tar", tarMatcher()).withKind(Archive),
		newMIME("application/x-xar", "XAR archive", ".xar", xar).withKind(Archive),
		newMIME("application/x-bzip2", "Bzip2 archive", ".bz2", bz2).withKind(Archive),
		newMIME("application/fits", "FITS image", ".fits", fits).alias("image/fits").withKind(Image),
		newMIME("image/tiff", "TIFF image", ".tiff", tiff).extAlias(".tif").withKind(Image),
		newMIME("image/bmp", "Bitmap image", ".bmp", bmp).
			alias("image/x-bmp", "image/x-ms-bmp").extAlias(".dib").withKind(Image),
		newMIME("application/vnd.lotus-1-2-3", "Lotus 1-2-3 spreadsheet", ".123", lotus123).
			withKind(Spreadsheet|Database),
		newMIME("image/x-icon", "Windows icon", ".ico", ico).withKind(Image),
		newMIME("audio/mpeg", "MP3 audio", ".mp3", mp3).alias("audio/x-mpeg", "audio/mp3").withKind(Audio),
		newMIME("audio/flac", "FLAC audio", ".flac", flac).withKind(Audio),
		newMIME("audio/midi", "MIDI audio", ".midi", midi).alias("audio/mid").extAlias(".mid").withKind(Audio),
		newMIME("audio/ape", "Monkey's Audio", ".ape", ape).withKind(Audio),
		newMIME("audio/musepack", "Musepack audio", ".mpc", musepack).withKind(Audio),
		newMIME("audio/amr", "AMR audio", ".amr", amr).alias("audio/amr-nb").withKind(Audio),
		newMIME("audio/wav", "Waveform audio", ".wav", wav).
			alias("audio/x-wav", "audio/vnd.wave", "audio/wave").withKind(Audio),
		newMIME("audio/aiff", "AIFF audio", ".aiff", aiff).extAlias(".aif").withKind(Audio),
		newMIME("audio/basic", "Sun audio", ".au", au).extAlias(".snd").withKind(Audio),
		newMIME("video/mpeg", "MPEG video", ".mpeg", mpeg).withKind(Video),
		newMIME("video/quicktime", "QuickTime video", ".mov", qt).withKind(Video),
		newMIME("video/quicktime", "QuickTime video", ".mqv", mqv).withKind(Video),
		mp4Node(),
		ebmlNode(),
		newMIME("video/x-msvideo", "AVI video", ".avi", avi).alias("video/avi", "video/msvideo").withKind(Video),
		newMIME("video/x-flv", "Flash video", ".flv", flv).withKind(Video),
		newMIME("video/x-ms-asf", "Advanced Systems Format", ".asf", asf).
			alias("video/asf", "video/x-ms-wmv").withKind(Video),
		newMIME("audio/aac", "AAC audio", ".aac", aac).withKind(Audio),
		newMIME("audio/x-unknown", "Creative Voice audio", ".voc", voc).withKind(Audio),
		newMIME("audio/x-mpegurl", "M3U playlist", ".m3u", m3u).
			alias("audio/mpegurl").extAlias(".m3u8").withKind(Text),
		newMIME("application/vnd.rn-realmedia-vbr", "RealMedia video", ".rmvb", rmvb).withKind(Video),
		newMIME("application/gzip", "Gzip archive", ".gz", gzip).
			alias("application/x-gzip", "application/x-gunzip", "application/gzipped",
				"application/gzip-compressed", "application/x-gzip-compressed", "gzip/document").
			extAlias(".tgz", ".taz").withKind(Archive),
		newMIME("application/x-java-applet; charset=binary", "Java class", ".class", class).
			alias("application/x-java-applet").withKind(Application),
		newMIME("application/x-shockwave-flash", "Flash animation", ".swf", swf).withKind(Application),
		newMIME("application/x-chrome-extension", "Chrome extension", ".crx", crx).withKind(Application),
		newMIME("font/ttf", "TrueType font", ".ttf", ttf).
			alias("font/sfnt", "application/x-font-ttf", "application/font-sfnt").withKind(Font),
		newMIME("font/woff", "WOFF font", ".woff", woff).withKind(Font),
		newMIME("font/woff2", "WOFF2 font", ".woff2", woff2).withKind(Font),
		newMIME("font/otf", "OpenType font", ".otf", otf).withKind(Font),
		newMIME("font/collection", "TrueType collection", ".ttc", ttc).withKind(Font),
		newMIME("application/vnd.ms-fontobject", "Embedded OpenType font", ".eot", eot).withKind(Font),
		newMIME("application/wasm", "WebAssembly module", ".wasm", wasm).withKind(Executable),
		newMIME("application/vnd.shx", "Shapefile index", ".shx", shx,
			newMIME("application/vnd.shp", "Shapefile", ".shp", shp),
		),
		newMIME("application/x-dbf", "dBase table", ".dbf", dbf).withKind(Database),
		newMIME("application/dicom", "DICOM image", ".dcm", dcm).withKind(Image),
		newMIME("application/x-rar-compressed", "RAR archive", ".rar", rar).
			alias("application/x-rar").withKind(Archive),
		newMIME("image/vnd.djvu", "DjVu document", ".djvu", djvu).withKind(Image),
		newMIME("application/x-mobipocket-ebook", "Mobipocket e-book", ".mobi", mobi).withKind(Document),
		newMIME("application/x-ms-reader", "Microsoft Reader e-book", ".lit", lit).withKind(Document),
		newMIME("image/bpg", "BPG image", ".bpg", bpg).withKind(Image),
		newMIME("application/cbor", "CBOR data", ".cbor", cbor),
		newMIME("application/vnd.sqlite3", "SQLite database", ".sqlite", sqlite).
			alias("application/x-sqlite3").withKind(Database),
		newMIME("image/vnd.dwg", "AutoCAD drawing", ".dwg", dwg).
			alias("image/x-dwg", "application/acad", "application/x-acad", "application/autocad_dwg",
				"application/dwg", "application/x-dwg", "application/x-autocad", "drawing/dwg").
			withKind(Image),
		newMIME("image/vnd.dxf", "Drawing Exchange Format", ".dxf", dxf).withKind(Image),
		newMIME("application/vnd.wordperfect", "WordPerfect document", ".wpd", wpd).withKind(Document),
		newMIME("application/vnd.nintendo.snes.rom", "NES ROM", ".nes", nes),
		newMIME("application/x-ms-shortcut", "Windows shortcut", ".lnk", lnk),
		newMIME("application/x-mach-binary", "Mach-O binary", ".macho", macho).withKind(Executable),
		newMIME("audio/qcelp", "QCELP audio", ".qcp", qcp).withKind(Audio),
		newMIME("image/x-icns", "Apple icon", ".icns", icns).withKind(Image),
		newMIME("image/vnd.radiance", "Radiance HDR image", ".hdr", hdr).withKind(Image),
		newMIME("application/x-hdf", "Hierarchical Data Format", ".hdf", hdf).withKind(Database),
		newMIME("application/marc", "MARC record", ".mrc", marc).withKind(Text|Database),
		newMIME("application/x-msaccess", "Access database", ".mdb", mdb).withKind(Database),
		newMIME("application/x-msaccess", "Access database", ".accdb", accdb).withKind(Database),
		newMIME("application/zstd", "Zstandard archive", ".zst", zstd).withKind(Archive),
		newMIME("application/vnd.ms-cab-compressed", "Cabinet archive", ".cab", cab).withKind(Archive),
		newMIME("application/vnd.ms-htmlhelp", "Compiled HTML help", ".chm", chm).withKind(Document),
		newMIME("application/x-rpm", "RPM package", ".rpm", rpm).withKind(Archive),
		newMIME("application/x-xz", "XZ archive", ".xz", xz).withKind(Archive),
		newMIME("application/lzip", "Lzip archive", ".lz", lzip).alias("application/x-lzip").withKind(Archive),
		newMIME("application/x-bittorrent", "BitTorrent file", ".torrent", torrent),
		newMIME("application/x-cpio", "CPIO archive", ".cpio", cpio).withKind(Archive),
		newMIME("application/tzif", "Time zone information", "", tzif),
		newMIME("image/x-xcf", "GIMP image", ".xcf", xcf).withKind(Image),
		newMIME("image/x-gimp-pat", "GIMP pattern", ".pat", pat).withKind(Image),
		newMIME("image/x-gimp-gbr", "GIMP brush", ".gbr", gbr).withKind(Image),
		newMIME("model/gltf-binary", "Binary glTF model", ".glb", glb).withKind(Model),
		newMIME("application/x-installshield", "InstallShield cabinet", ".cab", installShieldCab).withKind(Archive),
		newMIME("image/jxr", "JPEG XR image", ".jxr", jxr).alias("image/vnd.ms-photo").withKind(Image),
		newMIME("application/vnd.apache.parquet", "Parquet file", ".parquet", parquet).
			alias("application/x-parquet").withKind(Database),

		// text roots, exactly one of them matches any buffer without a
		// binary signature
		utf8Node(),
		newContainer(plainText, "UTF-8 text with BOM", ".txt", charsetMatcher(format.CharsetUTF8BOM)).
			withKind(Text),
		newContainer("text/plain; charset=utf-16be", "UTF-16 text (big endian)", ".txt",
			charsetMatcher(format.CharsetUTF16BE), utf16Nodes(format.CharsetUTF16BE)...).withKind(Text),
		newContainer("text/plain; charset=utf-16le", "UTF-16 text (little endian)", ".txt",
			charsetMatcher(format.CharsetUTF16LE), utf16Nodes(format.CharsetUTF16LE)...).withKind(Text),
	)
}

func zipNode() *node {
	odf := func(kind format.ZipKind, mime, name, ext string, k Kind, children ...*node) *node {
		return newContainer(mime, name, ext, zipMatcher(kind), children...).
			alias("application/x-" + mime[len("application/"):]).withKind(k)
	}
	template := func(mime, name, ext string) *node {
		return newMIME(mime, name, ext, zipMimetype(mime)).withKind(Document)
	}

	return newContainer("application/zip", "ZIP archive", ".zip", matcher{kind: zipTest, tag: containerTag},
		newContainer("application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"Word document", ".docx", zipMatcher(format.ZipDOCX)).withKind(Document),
		newContainer("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"Excel spreadsheet", ".xlsx", zipMatcher(format.ZipXLSX)).withKind(Spreadsheet),
		newContainer("application/vnd.openxmlformats-officedocument.presentationml.presentation",
			"PowerPoint presentation", ".pptx", zipMatcher(format.ZipPPTX)).withKind(Presentation),
		newContainer("application/vnd.ms-visio.drawing.main+xml", "Visio drawing", ".vsdx",
			zipMatcher(format.ZipVSDX)).withKind(Document),
		newContainer("application/epub+zip", "EPUB e-book", ".epub", zipMatcher(format.ZipEPUB)).
			withKind(Document),
		newContainer("application/java-archive", "Java archive", ".jar", zipMatcher(format.ZipJAR)).
			alias("application/jar", "application/jar-archive", "application/x-java-archive").
			withKind(Application),
		newContainer("application/vnd.android.package-archive", "Android package", ".apk",
			zipMatcher(format.ZipAPK)).withKind(Application),
		odf(format.ZipODT, "application/vnd.oasis.opendocument.text", "OpenDocument text", ".odt", Document,
			template("application/vnd.oasis.opendocument.text-template", "OpenDocument text template", ".ott")),
		odf(format.ZipODS, "application/vnd.oasis.opendocument.spreadsheet", "OpenDocument spreadsheet", ".ods",
			Spreadsheet,
			template("application/vnd.oasis.opendocument.spreadsheet-template",
				"OpenDocument spreadsheet template", ".ots")),
		odf(format.ZipODP, "application/vnd.oasis.opendocument.presentation", "OpenDocument presentation",
			".odp", Presentation,
			template("application/vnd.oasis.opendocument.presentation-template",
				"OpenDocument presentation template", ".otp")),
		odf(format.ZipODG, "application/vnd.oasis.opendocument.graphics", "OpenDocument drawing", ".odg",
			Document,
			template("application/vnd.oasis.opendocument.graphics-template", "OpenDocument drawing template",
				".otg")),
		odf(format.ZipODF, "application/vnd.oasis.opendocument.formula", "OpenDocument formula", ".odf",
			Document),
		odf(format.ZipODC, "application/vnd.oasis.opendocument.chart", "OpenDocument chart", ".odc", Document),
		newContainer("application/vnd.sun.xml.calc", "StarOffice spreadsheet", ".sxc",
			zipMatcher(format.ZipSXC)).withKind(Spreadsheet),
		newContainer("application/vnd.google-earth.kmz", "Compressed KML", ".kmz", zipMatcher(format.ZipKMZ)).
			withKind(Document),
	).
		alias("application/x-zip", "application/x-zip-compressed").
		extAlias(".xlsx", ".docx", ".pptx", ".vsdx", ".epub", ".jar", ".odt", ".ods", ".odp", ".odg",
			".odf", ".sxc", ".kmz").
		withKind(Archive)
}

// zipMimetype matches ZIP files whose stored mimetype entry is exactly mime.
func zipMimetype(mime string) func([]byte) bool {
	return func(buf []byte) bool {
		return string(format.ZipMimetype(buf)) == mime
	}
}

func oleNode() *node {
	return newContainer("application/x-ole-storage", "OLE compound file", "",
		matcher{kind: oleTest, tag: containerTag},
		newContainer("application/x-ms-installer", "Windows installer", ".msi", oleMatcher(format.OLEMSI)).
			withKind(Archive),
		newContainer("application/x-aaf", "Advanced Authoring Format", ".aaf", oleMatcher(format.OLEAAF)),
		newContainer("application/vnd.ms-outlook", "Outlook message", ".msg", oleMatcher(format.OLEMSG)).
			withKind(Document),
		newContainer("application/vnd.ms-excel", "Excel 97-2003 spreadsheet", ".xls", oleMatcher(format.OLEXLS)).
			withKind(Spreadsheet),
		newContainer("application/vnd.ms-publisher", "Publisher document", ".pub", oleMatcher(format.OLEPUB)).
			withKind(Document),
		newContainer("application/vnd.ms-powerpoint", "PowerPoint 97-2003 presentation", ".ppt",
			oleMatcher(format.OLEPPT)).withKind(Presentation),
		newContainer("application/msword", "Word 97-2003 document", ".doc", oleMatcher(format.OLEDOC)).
			withKind(Document),
		newContainer("application/onenote", "OneNote notebook", ".one", oleMatcher(format.OLEOneNote)).
			withKind(Document),
		newContainer("application/x-fasoo", "Fasoo protected document", "", oleMatcher(format.OLEFASOO)),
		newContainer("application/x-pgp-net-share", "PGP NetShare file", "", oleMatcher(format.OLEPGPNetShare)),
	).
		extAlias(".xls", ".pub", ".ppt", ".doc", ".chm", ".one").
		withKind(Document)
}

func elfNode() *node {
	return newMIME("application/x-elf", "ELF binary", "", elf,
		newMIME("application/x-object", "ELF relocatable object", "", elfType(1)).withKind(Executable),
		newMIME("application/x-executable", "ELF executable", "", elfType(2)).withKind(Executable),
		newMIME("application/x-sharedlib", "ELF shared library", ".so", elfType(3)).withKind(Executable),
		newMIME("application/x-coredump", "ELF core dump", "", elfType(4)).withKind(Executable),
	).extAlias(".so").withKind(Executable)
}

func mp4Node() *node {
	return newContainer("video/mp4", "MPEG-4 video", ".mp4", matcher{kind: isobmffTest, tag: containerTag},
		newContainer("image/avif", "AVIF image", ".avif", isobmffMatcher(format.ISOBMFFAVIF)).withKind(Image),
		newContainer("video/3gpp", "3GPP video", ".3gp", isobmffMatcher(format.ISOBMFF3GPP)).
			alias("video/3gp", "audio/3gpp").withKind(Video),
		newContainer("video/3gpp2", "3GPP2 video", ".3g2", isobmffMatcher(format.ISOBMFF3GPP2)).
			alias("video/3g2", "audio/3gpp2").withKind(Video),
		newContainer("audio/mp4", "MPEG-4 audio", ".mp4", isobmffMatcher(format.ISOBMFFAudioMP4)).
			alias("audio/x-m4a", "audio/x-mp4a").withKind(Audio),
		newContainer("audio/x-m4a", "MPEG-4 audio book", ".m4a", isobmffMatcher(format.ISOBMFFM4A)).
			withKind(Audio),
		newContainer("video/x-m4v", "iTunes video", ".m4v", isobmffMatcher(format.ISOBMFFM4V)).withKind(Video),
		newContainer("image/heic", "HEIC image", ".heic", isobmffMatcher(format.ISOBMFFHEIC)).withKind(Image),
		newContainer("image/heic-sequence", "HEIC image sequence", ".heic",
			isobmffMatcher(format.ISOBMFFHEICSequence)).withKind(Image),
		newContainer("image/heif", "HEIF image", ".heif", isobmffMatcher(format.ISOBMFFHEIF)).withKind(Image),
		newContainer("image/heif-sequence", "HEIF image sequence", ".heif",
			isobmffMatcher(format.ISOBMFFHEIFSequence)).withKind(Image),
		newContainer("video/mj2", "Motion JPEG 2000", ".mj2", isobmffMatcher(format.ISOBMFFMJ2)),
		newContainer("video/vnd.dvb.file", "DVB file", ".dvb", isobmffMatcher(format.ISOBMFFDVB)).withKind(Video),
	).withKind(Video)
}

func ebmlNode() *node {
	return newContainer("application/x-ebml", "EBML document", "", matcher{kind: ebmlTest, tag: containerTag},
		newContainer("video/webm", "WebM video", ".webm", ebmlMatcher(format.EBMLWebM)).
			alias("audio/webm").withKind(Video),
		newContainer("video/x-matroska", "Matroska video", ".mkv", ebmlMatcher(format.EBMLMatroska)).
			extAlias(".mk3d", ".mka", ".mks").withKind(Video),
	)
}

func utf8Node() *node {
	return newContainer(plainText, "UTF-8 text", ".txt", charsetMatcher(format.CharsetUTF8),
		newMIME("text/html; charset=utf-8", "HTML document", ".html", html).extAlias(".htm"),
		newMIME("image/svg+xml", "SVG image", ".svg", svg).withKind(Image),
		newMIME("text/xml; charset=utf-8", "XML document", ".xml", xml,
			newMIME("application/rss+xml", "RSS feed", ".rss", rss).alias("text/rss").withKind(Text),
			newMIME("application/atom+xml", "Atom feed", ".atom", atom).withKind(Text),
			newMIME("model/x3d+xml", "X3D model", ".x3d", x3d).withKind(Text),
			newMIME("application/vnd.google-earth.kml+xml", "KML document", ".kml", kml).withKind(Text),
			newMIME("application/x-xliff+xml", "XLIFF document", ".xlf", xliff).withKind(Text),
			newMIME("model/vnd.collada+xml", "COLLADA model", ".dae", dae).withKind(Model),
			newMIME("application/gml+xml", "GML document", ".gml", gml).withKind(Text),
			newMIME("application/gpx+xml", "GPS exchange", ".gpx", gpx).withKind(Text),
			newMIME("application/vnd.garmin.tcx+xml", "Garmin training center", ".tcx", tcx).withKind(Text),
			newMIME("application/x-amf", "Additive manufacturing file", ".amf", amf).withKind(Model),
			newMIME("application/vnd.ms-package.3dmanufacturing-3dmodel+xml", "3D manufacturing model",
				".3mf", threeMF).withKind(Model),
			newMIME("application/vnd.adobe.xfdf", "XML forms data", ".xfdf", xfdf).withKind(Text),
			newMIME("application/owl+xml", "OWL ontology", ".owl", owl2).withKind(Text),
			newMIME("application/xhtml+xml", "XHTML document", ".html", xhtml).withKind(Text),
		).alias("application/xml"),
		newMIME("text/rtf", "Rich Text document", ".rtf", rtf).alias("application/rtf").withKind(Document),
		newMIME("text/x-php", "PHP script", ".php", php),
		newMIME("text/javascript", "JavaScript source", ".js", javascript).alias("application/javascript"),
		newMIME("text/x-python", "Python script", ".py", python).
			alias("text/x-script.python", "application/x-python"),
		newMIME("text/x-perl", "Perl script", ".pl", perl),
		newMIME("text/x-ruby", "Ruby script", ".rb", ruby).alias("application/x-ruby"),
		newMIME("text/x-lua", "Lua script", ".lua", lua),
		newMIME("text/x-shellscript", "Shell script", ".sh", shell).
			alias("text/x-sh", "application/x-shellscript", "application/x-sh"),
		newMIME("text/x-tcl", "Tcl script", ".tcl", tcl).alias("application/x-tcl"),
		newMIME("application/json", "JSON document", ".json", jsonDoc,
			newMIME("application/geo+json", "GeoJSON document", ".geojson", geojson),
			newMIME("application/x-ndjson", "Newline delimited JSON", ".ndjson", ndjson),
			newMIME("application/json", "HTTP archive", ".har", har).withKind(Text),
			newMIME("model/gltf+json", "glTF model", ".gltf", gltf).withKind(Model),
		),
		newMIME("text/csv", "Comma separated values", ".csv", csvDoc),
		newMIME("text/tab-separated-values", "Tab separated values", ".tsv", tsv),
		newMIME("application/x-subrip", "SubRip subtitles", ".srt", srt).
			alias("application/x-srt", "text/x-srt").withKind(Document),
		newMIME("text/vtt", "WebVTT subtitles", ".vtt", vtt),
		newMIME("text/vcard", "vCard", ".vcf", vcard),
		newMIME("text/calendar", "iCalendar", ".ics", icalendar),
		newMIME("application/warc", "Web archive", ".warc", warc).withKind(Archive),
	).alias("text/plain").withKind(Text)
}

// utf16Nodes declares the text formats recognized in UTF-16 input. They
// run the same tests as their UTF-8 counterparts over the decoded text.
func utf16Nodes(c format.Charset) []*node {
	text := func(mime, name, ext string, test func([]byte) bool) *node {
		return newContainer(mime+"; charset=utf-16", name+" (UTF-16)", ext, utf16Matcher(c, test))
	}
	return []*node{
		text("text/html", "HTML document", ".html", html),
		text("image/svg+xml", "SVG image", ".svg", svg).withKind(Image),
		text("text/xml", "XML document", ".xml", xml).alias("application/xml; charset=utf-16"),
		text("application/json", "JSON document", ".json", jsonDoc),
		text("text/csv", "Comma separated values", ".csv", csvDoc),
		text("text/tab-separated-values", "Tab separated values", ".tsv", tsv),
		text("application/x-subrip", "SubRip subtitles", ".srt", srt),
		text("text/vtt", "WebVTT subtitles", ".vtt", vtt),
		text("text/vcard", "vCard", ".vcf", vcard),
		text("text/calendar", "iCalendar", ".ics", icalendar),
		text("text/rtf", "Rich Text document", ".rtf", rtf),
	}
}
