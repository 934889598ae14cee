package verify

import (
	"encoding/base64"
	"strings"

	"github.com/dop251/goja"
)

// workerShim defines the few worker globals a site script uses at load
// time. The native helpers are installed by newRuntime.
const workerShim = `
class TextEncoder {
  get encoding() { return 'utf-8' }
  encode(s) { return new Uint8Array(__sitebundle_utf8(String(s === undefined ? '' : s))) }
}
class TextDecoder {
  get encoding() { return 'utf-8' }
  decode(b) {
    if (b === undefined) return ''
    return __sitebundle_text(ArrayBuffer.isView(b) ? b.buffer.slice(b.byteOffset, b.byteOffset + b.byteLength) : b)
  }
}
`

// newRuntime returns a VM with global, TextEncoder, TextDecoder and atob.
func newRuntime() (*goja.Runtime, error) {
	vm := goja.New()
	vm.Set("global", vm.GlobalObject())

	vm.Set("__sitebundle_utf8", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(vm.NewArrayBuffer([]byte(call.Argument(0).String())))
	})
	vm.Set("__sitebundle_text", func(call goja.FunctionCall) goja.Value {
		buf, ok := call.Argument(0).Export().(goja.ArrayBuffer)
		if !ok {
			panic(vm.NewTypeError("TextDecoder.decode: argument is not a buffer"))
		}
		return vm.ToValue(strings.ToValidUTF8(string(buf.Bytes()), "\uFFFD"))
	})
	vm.Set("atob", func(call goja.FunctionCall) goja.Value {
		data, err := base64.StdEncoding.DecodeString(call.Argument(0).String())
		if err != nil {
			panic(vm.NewTypeError("atob: %s", err))
		}
		// one char per byte, code points 0-255
		runes := make([]rune, len(data))
		for i, c := range data {
			runes[i] = rune(c)
		}
		return vm.ToValue(string(runes))
	})

	if _, err := vm.RunScript("worker-shim.js", workerShim); err != nil {
		return nil, err
	}
	return vm, nil
}
