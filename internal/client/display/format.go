package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(w, string(data))
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, Green+format+Reset+"\n", args...)
}

func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, Cyan+format+Reset+"\n", args...)
}

func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, Red+format+Reset+"\n", args...)
}
