package e2e_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("instruct install", func() {
	var ws *workspace

	BeforeEach(func() {
		ws = newWorkspace()
		writeFile(ws.Dir, "install.cfg", echoConfig)
	})

	It("runs every instruction and reports success", func() {
		out := ws.ok("install", ".", "--greeting", "goodbye", "--loud")
		Expect(out).To(Equal("Installation successful."))
		Expect(readFile(ws.Dir, "greeting.txt")).To(Equal("goodbye!\n"))
	})

	It("only prints the commands on --dry-run", func() {
		out := ws.ok("install", ".", "--dry-run")
		Expect(out).To(Equal("$ echo hello > greeting.txt\n$ cat greeting.txt"))
		_, err := os.Stat(filepath.Join(ws.Dir, "greeting.txt"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("streams commands and their output with -v", func() {
		out := ws.ok("install", ".", "-v")
		Expect(out).To(Equal("$ echo hello > greeting.txt\n$ cat greeting.txt\nhello\nInstallation successful."))
	})

	It("stops at the first failing command and shows its output", func() {
		r := ws.fail("install", ".", "--greeting", "fail")
		Expect(r.Stdout).NotTo(ContainSubstring("Installation successful."))
		Expect(r.Stderr).To(ContainSubstring("Command: sh -c 'echo partial; echo broken >&2; exit 3'"))
		Expect(r.Stderr).To(ContainSubstring("Stdout:\npartial"))
		Expect(r.Stderr).To(ContainSubstring("Stderr:\nbroken"))
		Expect(r.Stderr).To(ContainSubstring("installation failed"))
	})

	It("does not run anything for an unsupported combination", func() {
		writeFile(ws.Dir, "install.cfg", "properties:\n  os:\n    enum: [win, linux]\n    default: win\n------\n{{ if eq .os \"win\" }}{{ raise \"Not on Windows\" }}{{ end }}\ntouch ran.txt\n")
		r := ws.fail("install", ".")
		Expect(r.Stderr).To(ContainSubstring("Not on Windows"))
		_, err := os.Stat(filepath.Join(ws.Dir, "ran.txt"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("keeps instruct settings out of the commands' environment", func() {
		writeFile(ws.Dir, "install.cfg", "{}\n------\necho \"[$INSTRUCT_DEFAULTS_FILE]\"\n")
		Expect(ws.ok("install", ".", "-v")).To(ContainSubstring("\n[]\n"))
	})

	It("runs commands under a terminal with --tty", func() {
		writeFile(ws.Dir, "install.cfg", "{}\n------\ntest -t 1 && echo on a terminal\n")
		Expect(ws.ok("install", ".", "--tty", "-v")).To(ContainSubstring("on a terminal"))
	})
})
