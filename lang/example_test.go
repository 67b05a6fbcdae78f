package lang_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/javpy/lang"
)

func ExampleExec() {
	env := lang.NewEnvironment()

	err := lang.Exec(context.Background(), `
		<$> area of a circle <$!>
		const r: 2
		print 3.14 * r ** 2
		print <<r = >> + <<two>>
	`, env)
	if err != nil {
		fmt.Println(err)
	}
	// Output:
	// 12.56
	// r = two
}

func ExampleCompile() {
	ctx := context.Background()

	prog, err := lang.Compile(ctx, "const limit: 10\nlimit: 11")
	if err != nil {
		panic(err)
	}

	err = prog.Run(ctx, lang.NewEnvironment())
	fmt.Println(errors.Is(err, lang.ErrConstantModified))
	fmt.Println(err)
	// Output:
	// true
	// runtime error at line 2, column 1: cannot modify constant 'limit'
	//   2 | limit: 11
	//     | ^
}

func ExampleTokenize() {
	tokens, err := lang.Tokenize(context.Background(), "x: <<hi>>")
	if err != nil {
		panic(err)
	}

	_ = lang.FormatTokens(os.Stdout, tokens)
	// Output:
	// 1:1  IDENT   x
	// 1:2  COLON   :
	// 1:4  STRING  <<hi>>
}

func ExampleFormat() {
	tokens, _ := lang.Tokenize(context.Background(), "print ((1+2))*(3**(4))")
	stmts, _ := lang.Parse(context.Background(), tokens)

	_ = lang.Format(os.Stdout, stmts)
	// Output:
	// print (1 + 2) * 3 ** 4
}
