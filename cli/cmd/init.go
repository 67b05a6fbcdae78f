package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
	"github.com/ardnew/javpy/pkg"
	"github.com/ardnew/javpy/profile"
)

// configHeader opens every generated configuration file.
const configHeader = "<$> " + pkg.Name + " configuration: each binding sets the flag of the same name <$!>\n"

// Init writes the current flag values as a javpy configuration file.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err := os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	stmts := i.buildConfig(ctx, ktx)

	err = writeConfig(file, stmts)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("bindings", len(stmts)),
	)

	return nil
}

func writeConfig(w io.Writer, stmts []lang.Stmt) error {
	_, err := io.WriteString(w, configHeader)
	if err != nil {
		return err
	}

	return lang.Format(w, stmts)
}

// buildConfig declares one binding per application flag that has a value.
func (i *Init) buildConfig(ctx context.Context, ktx *kong.Context) []lang.Stmt {
	prefixIgnore := []string{"help", profile.Tag}

	var stmts []lang.Stmt

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		expr := flagExpr(ktx.FlagValue(flag))
		if expr == nil {
			log.DebugContext(ctx, "skipping flag", slog.String("flag", flag.Name))

			continue
		}

		stmts = append(stmts, &lang.VarDecl{
			Name: strings.ReplaceAll(flag.Name, "-", "_"),
			Expr: expr,
		})
	}

	return stmts
}

// flagExpr returns the literal for a flag value, or nil if the value is
// unset or has no literal form.
//
// Negative numbers have no literal form (the language has no unary minus),
// so they are written as strings; the resolver hands every value to kong as
// text anyway.
func flagExpr(val any) lang.Expr {
	if val == nil {
		return nil
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Bool:
		return &lang.BoolLit{Value: rv.Bool()}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n >= 0 {
			return &lang.NumberLit{Value: float64(n)}
		}

		return stringExpr(strconv.FormatInt(rv.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &lang.NumberLit{Value: float64(rv.Uint())}

	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); f >= 0 {
			return &lang.NumberLit{Value: f}
		}

		return stringExpr(strconv.FormatFloat(rv.Float(), 'f', -1, 64))

	case reflect.String:
		return stringExpr(rv.String())

	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Pointer:
		return nil

	default:
		return stringExpr(fmt.Sprint(val))
	}
}

// stringExpr returns a string literal, or nil for text that is empty or
// cannot appear between the << >> delimiters.
func stringExpr(s string) lang.Expr {
	if s == "" || strings.Contains(s, ">") {
		return nil
	}

	return &lang.StringLit{Value: s}
}
