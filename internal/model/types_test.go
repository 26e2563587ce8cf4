package model

import "testing"

func TestFillRateFormats(t *testing.T) {
	t.Parallel()

	o := &Order{FillRate: 0.4567}

	// 导出为两位小数，列表展示为一位小数
	if got := o.FillRateExport(); got != "45.67%" {
		t.Fatalf("FillRateExport=%q, want 45.67%%", got)
	}
	if got := o.FillRateDisplay(); got != "45.7%" {
		t.Fatalf("FillRateDisplay=%q, want 45.7%%", got)
	}
}

func TestFillRateFormats_Zero(t *testing.T) {
	t.Parallel()

	o := &Order{}
	if got := o.FillRateExport(); got != "0.00%" {
		t.Fatalf("FillRateExport=%q, want 0.00%%", got)
	}
	if got := o.FillRateDisplay(); got != "0.0%" {
		t.Fatalf("FillRateDisplay=%q, want 0.0%%", got)
	}
}

func TestImagesByType(t *testing.T) {
	t.Parallel()

	o := &OrderWithDetails{
		Images: []*OrderImage{
			{URL: "a1", ImageType: ImageActual},
			{URL: "p1", ImageType: ImagePredicted},
			{URL: "a2", ImageType: ImageActual},
		},
	}

	actual := o.ImagesByType(ImageActual)
	if len(actual) != 2 || actual[0].URL != "a1" || actual[1].URL != "a2" {
		t.Fatalf("actual=%v", actual)
	}
	predicted := o.ImagesByType(ImagePredicted)
	if len(predicted) != 1 || predicted[0].URL != "p1" {
		t.Fatalf("predicted=%v", predicted)
	}
}
