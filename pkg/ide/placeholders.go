package ide

import "github.com/rhuss/codepad/pkg/api"

const (
	pythonPlaceholder = `name = input("Enter your name: ")
print(f"Hello, {name}!")`

	javascriptPlaceholder = "// To read from stdin in Node.js:\n" +
		"// process.stdin.on(\"data\", data => console.log(`You entered: ${data}`));\n" +
		"console.log(\"Hello, world!\");"
)

// DefaultPlaceholders returns the starter code shown when a language is selected.
func DefaultPlaceholders() map[api.Language]string {
	return map[api.Language]string{
		api.LanguagePython:     pythonPlaceholder,
		api.LanguageJavaScript: javascriptPlaceholder,
	}
}
