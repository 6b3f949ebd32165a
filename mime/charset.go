package mime

type Charset = string

const (
	UTF8   Charset = "utf8"
	ASCII  Charset = "ascii"
	CP1251 Charset = "cp1251"
	CP1252 Charset = "cp1252"
)
