package main

import (
	"oss.terrastruct.com/b2/b2cli"
	"oss.terrastruct.com/b2/lib/xmain"
)

func main() {
	xmain.Main(b2cli.Run)
}
