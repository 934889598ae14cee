package manifest

// contentTypes maps lowercase extensions to MIME types. The table is fixed
// so the same bucket renders the same script on every build host.
var contentTypes = map[string]string{
	".js":          "text/javascript",
	".mjs":         "text/javascript",
	".json":        "application/json",
	".webmanifest": "application/manifest+json",
	".map":         "application/json",
	".wasm":        "application/wasm",
	".xml":         "text/xml",
	".xsl":         "application/xml",
	".rdf":         "application/xml",
	".wsdl":        "application/xml",
	".pdf":         "application/pdf",
	".zip":         "application/zip",
	".tar":         "application/x-tar",
	".gtar":        "application/x-gtar",
	".bin":         "application/octet-stream",
	".a":           "application/octet-stream",
	".dll":         "application/octet-stream",
	".exe":         "application/octet-stream",
	".o":           "application/octet-stream",
	".obj":         "application/octet-stream",
	".so":          "application/octet-stream",
	".doc":         "application/msword",
	".dot":         "application/msword",
	".xls":         "application/vnd.ms-excel",
	".ppt":         "application/vnd.ms-powerpoint",
	".ps":          "application/postscript",
	".ai":          "application/postscript",
	".eps":         "application/postscript",
	".m3u":         "application/vnd.apple.mpegurl",
	".m3u8":        "application/vnd.apple.mpegurl",
	".ogx":         "application/ogg",
	".sh":          "application/x-sh",
	".csh":         "application/x-csh",
	".tex":         "application/x-tex",
	".latex":       "application/x-latex",
	".swf":         "application/x-shockwave-flash",
	".p12":         "application/x-pkcs12",
	".pfx":         "application/x-pkcs12",

	".css":      "text/css",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".html":     "text/html",
	".htm":      "text/html",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".bat":      "text/plain",
	".c":        "text/plain",
	".h":        "text/plain",
	".ksh":      "text/plain",
	".pl":       "text/plain",
	".srt":      "text/plain",
	".rtx":      "text/richtext",
	".vtt":      "text/vtt",
	".vcf":      "text/x-vcard",
	".sgm":      "text/x-sgml",
	".sgml":     "text/x-sgml",
	".py":       "text/x-python",

	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
	".ico":  "image/vnd.microsoft.icon",
	".jpg":  "image/jpeg",
	".jpe":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".pbm":  "image/x-portable-bitmap",
	".pgm":  "image/x-portable-graymap",
	".ppm":  "image/x-portable-pixmap",
	".pnm":  "image/x-portable-anymap",
	".xbm":  "image/x-xbitmap",
	".xpm":  "image/x-xpixmap",

	".otf":   "font/otf",
	".ttf":   "font/ttf",
	".woff":  "font/woff",
	".woff2": "font/woff2",

	".aac":  "audio/aac",
	".au":   "audio/basic",
	".snd":  "audio/basic",
	".mp2":  "audio/mpeg",
	".mp3":  "audio/mpeg",
	".opus": "audio/opus",
	".aif":  "audio/x-aiff",
	".aifc": "audio/x-aiff",
	".aiff": "audio/x-aiff",
	".wav":  "audio/x-wav",
	".3gp":  "audio/3gpp",
	".3gpp": "audio/3gpp",

	".mp4":  "video/mp4",
	".m1v":  "video/mpeg",
	".mpe":  "video/mpeg",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".mov":  "video/quicktime",
	".qt":   "video/quicktime",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",

	".eml":   "message/rfc822",
	".mht":   "message/rfc822",
	".mhtml": "message/rfc822",
}
