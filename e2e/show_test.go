package e2e_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("instruct show", func() {
	var ws *workspace

	BeforeEach(func() {
		ws = newWorkspace()
	})

	It("prints the instructions for the config defaults", func() {
		Expect(ws.ok("show", example("scikit-learn"))).To(Equal("pip install -U scikit-learn"))
	})

	It("accepts the config file itself", func() {
		out := ws.ok("show", filepath.Join(example("scikit-learn"), "install.cfg"), "--os", "linux", "--packager", "conda")
		Expect(out).To(Equal("conda install -c conda-forge scikit-learn"))
	})

	It("prints one line per instruction", func() {
		out := ws.ok("show", example("scikit-learn"), "--os", "Linux", "--virtualenv")
		Expect(out).To(Equal("python3 -m venv sklearn-env\nsource sklearn-env/bin/activate\npip3 install -U scikit-learn"))
	})

	It("matches enum values with spaces and repeats array options", func() {
		out := ws.ok("show", example("spacy"),
			"--os", "Linux", "--platform", "arm / m1", "--package", "from source",
			"--pipelines", "German", "--pipelines", "English")
		Expect(out).To(HavePrefix("git clone https://github.com/explosion/spaCy\n"))
		Expect(out).To(HaveSuffix("python -m spacy download de_core_news_sm\npython -m spacy download en_core_web_sm"))
	})

	It("exits 1 with the message for an unsupported combination", func() {
		r := ws.fail("show", example("pytorch"),
			"--build", "preview", "--os", "win", "--package", "pip", "--compute-platform", "ro60")
		Expect(r.Stdout).To(BeEmpty())
		Expect(r.Stderr).To(ContainSubstring("Error: Windows does not support ROCm!"))
	})

	It("rejects a value outside the choices", func() {
		r := ws.fail("show", example("scikit-learn"), "--os", "Kali")
		Expect(r.Stderr).To(ContainSubstring("invalid choice"))
		Expect(r.Stderr).To(ContainSubstring("Windows, macOS, Linux"))
	})

	It("reports missing required options together", func() {
		writeFile(ws.Dir, "needs.cfg", "properties:\n  name:\n    type: string\n  version:\n    type: string\nrequired: [name, version]\n------\necho {{ .name }}\n")
		r := ws.fail("show", "needs.cfg")
		Expect(r.Stderr).To(ContainSubstring("missing required option(s): --name, --version"))
	})

	It("lists the config's options for --help", func() {
		out := ws.ok("show", example("scikit-learn"), "--help")
		Expect(out).To(ContainSubstring("instruct show SOURCE [OPTIONS]"))
		Expect(out).To(ContainSubstring("Scikit-learn"))
		Expect(out).To(ContainSubstring("--packager"))
		Expect(out).To(ContainSubstring("Choices: pip, conda"))
	})

	It("marks options that only apply conditionally", func() {
		out := ws.ok("show", example("spacy"), "--help")
		Expect(out).To(MatchRegexp(`--cuda .*\[Conditional\]`))
	})

	It("prints command help without a SOURCE", func() {
		r := ws.fail("show")
		Expect(r.Stdout).To(ContainSubstring("Print the installation instructions"))
		Expect(r.Stderr).To(ContainSubstring("requires a SOURCE argument"))
	})

	Describe("directory sources", func() {
		It("finds a nested install.cfg", func() {
			writeFile(ws.Dir, "project/packaging/install.cfg", echoConfig)
			Expect(ws.ok("show", "project")).To(Equal("echo hello > greeting.txt\ncat greeting.txt"))
		})

		It("skips gitignored configs", func() {
			writeFile(ws.Dir, "project/.gitignore", "build/\n")
			writeFile(ws.Dir, "project/build/install.cfg", "------\necho stale\n")
			writeFile(ws.Dir, "project/src/install.cfg", echoConfig)
			Expect(ws.ok("show", "project", "--greeting", "goodbye")).To(HavePrefix("echo goodbye"))
		})

		It("refuses to guess between several configs", func() {
			writeFile(ws.Dir, "project/a/install.cfg", echoConfig)
			writeFile(ws.Dir, "project/b/install.cfg", echoConfig)
			r := ws.fail("show", "project")
			Expect(r.Stderr).To(ContainSubstring("multiple install.cfg files found"))
		})

		It("fails when there is no config", func() {
			writeFile(ws.Dir, "empty/README.md", "# nothing\n")
			r := ws.fail("show", "empty")
			Expect(r.Stderr).To(ContainSubstring("no install.cfg found"))
		})
	})
})
