package driver

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"

	"jspress/pkg/errors"
	"jspress/pkg/source"
)

// directivePattern matches build directives written as line comments, e.g.
//
//	//!EMBED resources: logo.png, shader.glsl
var directivePattern = regexp2.MustCompile(`//!([A-Z]+)\s+(.*)$`, regexp2.Multiline)

// expandDirectives replaces every build directive in src with the code it
// stands for. Unknown directives are removed.
func expandDirectives(src *source.SourceFile, basePath string) (*source.SourceFile, []errors.MinifyError) {
	var errs []errors.MinifyError
	text, err := directivePattern.ReplaceFunc(src.Content, func(m regexp2.Match) string {
		command := m.GroupByNumber(1).String()
		args := strings.TrimRight(m.GroupByNumber(2).String(), "\r")
		switch command {
		case "EMBED":
			code, embedErrs := embed(args, basePath)
			errs = append(errs, embedErrs...)
			return code
		default:
			debugPrintf("[Directive] dropping unknown directive %s\n", command)
			return ""
		}
	}, -1, -1)
	if err != nil {
		errs = append(errs, &errors.IOError{Path: src.DisplayPath(), Cause: err})
		return src, errs
	}
	return source.NewSourceFile(src.Name, src.Path, text), errs
}

// embed turns "pack: a.png, b.txt" into registrations on pack.image and
// pack.file.
func embed(args, basePath string) (string, []errors.MinifyError) {
	colon := strings.IndexByte(args, ':')
	if colon < 0 {
		return "", []errors.MinifyError{&errors.ConfigError{
			Msg: fmt.Sprintf("EMBED directive %q has no resource pack", args),
		}}
	}
	pack := strings.TrimSpace(args[:colon])

	var b strings.Builder
	var errs []errors.MinifyError
	for _, name := range strings.Split(args[colon+1:], ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		path := filepath.Join(basePath, name)
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, &errors.IOError{Path: path, Cause: err})
			continue
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		if mime, ok := imageType(name); ok {
			fmt.Fprintf(&b, `%s.image.set("%s",(function(){var i=new Image();i.src="data:%s;base64,%s";return i;})());`,
				pack, name, mime, encoded)
		} else {
			fmt.Fprintf(&b, `%s.file.set("%s",atob("%s"));`, pack, name, encoded)
		}
	}
	return b.String(), errs
}

func imageType(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png", true
	case ".gif":
		return "image/gif", true
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	}
	return "", false
}
