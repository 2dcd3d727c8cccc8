package acceptance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/re-cinq/instruct/internal/instruction"
)

var _ = Describe("rendering the bundled examples", func() {
	DescribeTable("supported combinations",
		func(name string, input map[string]any, want []string) {
			out, err := loadExample(name).ValidateAndRender(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.IsError).To(BeFalse(), out.Text)
			Expect(out.Lines).To(Equal(want))
		},
		Entry("scikit-learn with pip on Windows", "scikit-learn",
			map[string]any{"os": "Windows", "packager": "pip", "virtualenv": false},
			[]string{"pip install -U scikit-learn"}),
		Entry("scikit-learn in a virtualenv on Windows", "scikit-learn",
			map[string]any{"os": "Windows", "packager": "conda", "virtualenv": true},
			[]string{`python -m venv sklearn-env`, `sklearn-env\Scripts\activate`, "conda install -c conda-forge scikit-learn"}),
		Entry("pytorch nightly conda with CUDA", "pytorch",
			map[string]any{"build": "preview", "os": "linux", "package": "conda", "compute_platform": "cu121"},
			[]string{"conda install pytorch torchvision torchaudio pytorch-cuda=12.1 -c pytorch-nightly -c nvidia"}),
		Entry("pytorch CPU wheels on Windows", "pytorch",
			map[string]any{"build": "stable", "os": "win", "package": "pip", "compute_platform": "cpu"},
			[]string{"pip3 install torch torchvision torchaudio --index-url https://download.pytorch.org/whl/cpu"}),
		Entry("spaCy with conda", "spacy",
			map[string]any{"os": "macOS", "platform": "x86", "package": "conda", "hardware": "CPU"},
			[]string{"conda install -c conda-forge spacy"}),
	)

	DescribeTable("unsupported combinations",
		func(name string, input map[string]any, want string) {
			out, err := loadExample(name).ValidateAndRender(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(instruction.Outcome{Text: want, IsError: true}))
		},
		Entry("ROCm on Windows", "pytorch",
			map[string]any{"build": "preview", "os": "win", "package": "pip", "compute_platform": "ro60"},
			"Windows does not support ROCm!"),
		Entry("CUDA on macOS", "pytorch",
			map[string]any{"build": "stable", "os": "mac", "package": "pip", "compute_platform": "cu118"},
			"macOS binaries do not support CUDA or ROCm, use CPU."),
		Entry("LibTorch", "pytorch",
			map[string]any{"build": "stable", "os": "linux", "package": "libtorch", "compute_platform": "cpu"},
			"Only conda and pip installs are described here."),
		Entry("spaCy GPU through conda", "spacy",
			map[string]any{"os": "Linux", "platform": "x86", "package": "conda", "hardware": "GPU"},
			"GPU support is not available through conda, use pip."),
	)

	It("reports answers the schema rejects before rendering", func() {
		out, err := loadExample("scikit-learn").ValidateAndRender(map[string]any{"os": "Kali", "packager": "pip"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.IsError).To(BeTrue())
		Expect(out.Text).To(HavePrefix("Schema validation error: "))
		Expect(out.Lines).To(BeEmpty())
	})

	It("rejects answers the schema does not declare", func() {
		out, err := loadExample("pytorch").ValidateAndRender(map[string]any{
			"build": "stable", "os": "linux", "package": "pip", "compute_platform": "cpu", "extra": true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.IsError).To(BeTrue())
	})
})
