package e2e_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("instruct schema", func() {
	It("outputs a JSON Schema for the schema section", func() {
		out := newWorkspace().ok("schema")

		var schema map[string]any
		Expect(json.Unmarshal([]byte(out), &schema)).To(Succeed())
		Expect(schema).To(HaveKeyWithValue("$schema", "https://json-schema.org/draft/2020-12/schema"))
		Expect(schema).To(HaveKey("description"))
		Expect(schema).To(HaveKey("oneOf"))
		Expect(schema).To(HaveKey("$defs"))
	})
})

var _ = Describe("instruct validate", func() {
	var ws *workspace

	BeforeEach(func() {
		ws = newWorkspace()
	})

	DescribeTable("the bundled examples are valid",
		func(name string) {
			Expect(ws.ok("validate", example(name))).To(Equal("valid"))
		},
		Entry("scikit-learn", "scikit-learn"),
		Entry("pytorch", "pytorch"),
		Entry("spacy", "spacy"),
	)

	It("reports authoring problems", func() {
		writeFile(ws.Dir, "install.cfg", `required: [ghost]
properties:
  os:
    enum: [linux, mac]
    default: win
then:
  properties:
    x:
      type: string
------
echo hi
`)
		r := ws.fail("validate", ".")
		Expect(r.Stderr).To(ContainSubstring(`required: "ghost" has no property definition`))
		Expect(r.Stderr).To(ContainSubstring("properties.os.default: win is not one of the enum values"))
		Expect(r.Stderr).To(ContainSubstring("then: then without if is ignored"))
		Expect(r.Stderr).To(ContainSubstring("3 problem(s) found"))
	})

	It("reports a missing delimiter", func() {
		writeFile(ws.Dir, "install.cfg", "properties: {}\necho hi\n")
		r := ws.fail("validate", ".")
		Expect(r.Stderr).To(ContainSubstring("delimiter"))
	})

	It("reports a schema that is not a valid JSON Schema", func() {
		writeFile(ws.Dir, "install.cfg", "properties:\n  os:\n    type: 12\n------\necho hi\n")
		ws.fail("validate", ".")
	})
})

var _ = Describe("instruct options", func() {
	var ws *workspace

	BeforeEach(func() {
		ws = newWorkspace()
	})

	type option struct {
		Key         string `json:"key" yaml:"key"`
		Name        string `json:"flag" yaml:"flag"`
		Conditional bool   `json:"conditional" yaml:"conditional"`
	}
	type listing struct {
		Project  string         `json:"project" yaml:"project"`
		Options  []option       `json:"options" yaml:"options"`
		Defaults map[string]any `json:"defaults" yaml:"defaults"`
	}

	It("lists options and author defaults as JSON", func() {
		var got listing
		Expect(json.Unmarshal([]byte(ws.ok("options", example("pytorch"))), &got)).To(Succeed())
		Expect(got.Project).To(Equal(pytorchID))

		names := make([]string, len(got.Options))
		for i, o := range got.Options {
			names[i] = o.Name
		}
		Expect(names).To(Equal([]string{"--build", "--os", "--package", "--compute-platform"}))
		Expect(got.Defaults).To(Equal(map[string]any{"build": "stable", "package": "pip", "compute_platform": "cpu"}))
	})

	It("lists options as YAML", func() {
		var got listing
		Expect(yaml.Unmarshal([]byte(ws.ok("options", example("spacy"), "--format", "yaml")), &got)).To(Succeed())
		last := got.Options[len(got.Options)-1]
		Expect(last.Key).To(Equal("cuda"))
		Expect(last.Conditional).To(BeTrue())
	})

	It("rejects unknown formats", func() {
		r := ws.fail("options", example("spacy"), "--format", "xml")
		Expect(r.Stderr).To(ContainSubstring(`unknown format "xml"`))
	})
})

var _ = Describe("instruct cat", func() {
	It("prints the config unchanged", func() {
		want, err := os.ReadFile(filepath.Join(example("spacy"), "install.cfg"))
		Expect(err).NotTo(HaveOccurred())
		Expect(newWorkspace().ok("cat", example("spacy"))).To(Equal(strings.TrimSpace(string(want))))
	})
})

var _ = Describe("instruct explain", func() {
	It("documents every command", func() {
		out := newWorkspace().ok("explain")
		for _, cmd := range []string{"show", "install", "cat", "options", "default", "schema", "validate", "version"} {
			Expect(out).To(ContainSubstring("\n  " + cmd + " "))
		}
	})
})

var _ = Describe("instruct version", func() {
	It("prints the version", func() {
		Expect(newWorkspace().ok("version")).To(HavePrefix("instruct "))
	})
})

var _ = Describe("global flags", func() {
	It("rejects an unknown log level", func() {
		r := newWorkspace().fail("version", "--log-level", "chatty")
		Expect(r.Stderr).To(ContainSubstring("LogLevel"))
	})

	It("writes JSON diagnostics with --log-format json", func() {
		r := newWorkspace().run("show", example("scikit-learn"), "--log-level", "debug", "--log-format", "json")
		Expect(r.Err).NotTo(HaveOccurred())
		Expect(r.Stderr).To(ContainSubstring(`"message":"loaded config"`))
	})
})
