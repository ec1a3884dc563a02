package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/earthboundkid/versioninfo/v2"
)

func Version(w io.Writer) {
	_, _ = fmt.Fprintf(w, "render-postfx %s\n", versioninfo.Short())
	_, _ = fmt.Fprintf(w, "  revision: %s\n", versioninfo.Revision)
	_, _ = fmt.Fprintf(w, "  commit:   %s\n", versioninfo.LastCommit.Format("2006-01-02T15:04:05Z07:00"))
	_, _ = fmt.Fprintf(w, "  dirty:    %t\n", versioninfo.DirtyBuild)
	_, _ = fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
