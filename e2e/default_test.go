package e2e_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const pytorchID = "https://github.com/instructions-d-installation/installation-instruction/examples/pytorch"

var _ = Describe("instruct default", func() {
	var ws *workspace

	BeforeEach(func() {
		ws = newWorkspace()
	})

	savedFile := func() map[string]map[string]any {
		var all map[string]map[string]any
		Expect(json.Unmarshal([]byte(readFile(filepath.Dir(ws.Defaults), filepath.Base(ws.Defaults))), &all)).To(Succeed())
		return all
	}

	It("saves answers and uses them in place of the config defaults", func() {
		out := ws.ok("default", "add", example("pytorch"), "--os", "win", "--package", "conda")
		Expect(out).To(ContainSubstring("Saved answers for " + pytorchID))
		Expect(out).To(ContainSubstring("os: win"))
		Expect(savedFile()).To(Equal(map[string]map[string]any{
			pytorchID: {"os": "win", "package": "conda"},
		}))

		Expect(ws.ok("show", example("pytorch"))).To(Equal("conda install pytorch torchvision torchaudio cpuonly -c pytorch"))
	})

	It("lets answers on the command line win over saved ones", func() {
		ws.ok("default", "add", example("pytorch"), "--os", "linux", "--package", "conda")
		out := ws.ok("show", example("pytorch"), "--package", "pip", "--compute-platform", "cu118")
		Expect(out).To(Equal("pip3 install torch torchvision torchaudio --index-url https://download.pytorch.org/whl/cu118"))
	})

	It("does not keep answers equal to the config defaults", func() {
		ws.ok("default", "add", example("pytorch"), "--os", "linux", "--build", "stable")
		Expect(savedFile()[pytorchID]).To(Equal(map[string]any{"os": "linux"}))
	})

	It("merges repeated adds", func() {
		ws.ok("default", "add", example("pytorch"), "--os", "linux")
		ws.ok("default", "add", example("pytorch"), "--build", "preview")
		Expect(savedFile()[pytorchID]).To(Equal(map[string]any{"os": "linux", "build": "preview"}))
	})

	It("lists saved answers per config and for all projects", func() {
		ws.ok("default", "add", example("pytorch"), "--os", "mac")
		ws.ok("default", "add", example("scikit-learn"), "--packager", "conda")

		Expect(ws.ok("default", "list", example("pytorch"))).To(Equal("os: mac"))

		all := ws.ok("default", "list")
		Expect(all).To(ContainSubstring(pytorchID))
		Expect(all).To(ContainSubstring("os: mac"))
		Expect(all).To(ContainSubstring("packager: conda"))
	})

	It("removes single answers or the whole project", func() {
		ws.ok("default", "add", example("pytorch"), "--os", "win", "--package", "conda")

		out := ws.ok("default", "remove", example("pytorch"), "--package", "pip")
		Expect(out).To(Equal("Removed 1 saved answer(s) for " + pytorchID + "."))
		Expect(savedFile()[pytorchID]).To(Equal(map[string]any{"os": "win"}))

		out = ws.ok("default", "remove", example("pytorch"))
		Expect(out).To(Equal("Removed saved answers for " + pytorchID + "."))
		_, err := os.Stat(ws.Defaults)
		Expect(os.IsNotExist(err)).To(BeTrue(), "an empty defaults file should be removed")

		out = ws.ok("default", "remove", example("pytorch"))
		Expect(out).To(Equal("No saved answers for " + pytorchID + "."))
	})

	It("honours --defaults-file over the environment", func() {
		other := filepath.Join(ws.Dir, "elsewhere.json")
		ws.ok("default", "add", example("pytorch"), "--os", "mac", "--defaults-file", other)
		_, err := os.Stat(other)
		Expect(err).NotTo(HaveOccurred())
		_, err = os.Stat(ws.Defaults)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("ignores a corrupt defaults file when showing", func() {
		writeFile(filepath.Dir(ws.Defaults), filepath.Base(ws.Defaults), "{not json")
		out := ws.ok("show", example("scikit-learn"), "--log-level", "warn")
		Expect(out).To(Equal("pip install -U scikit-learn"))
	})
})
