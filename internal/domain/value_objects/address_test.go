//go:build !integration

package valueobjects

import "testing"

func TestToEIP55ChecksumKnownFixtures(t *testing.T) {
	testCases := []struct {
		canonical string
		expected  string
	}{
		{
			canonical: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			expected:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			canonical: "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
			expected:  "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		},
		{
			canonical: "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb",
			expected:  "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		},
	}

	for _, testCase := range testCases {
		actual, appErr := ToEIP55Checksum(testCase.canonical)
		if appErr != nil {
			t.Fatalf("expected no error for %s, got %+v", testCase.canonical, appErr)
		}
		if actual != testCase.expected {
			t.Fatalf("expected %s, got %s", testCase.expected, actual)
		}
	}
}

func TestNormalizeAddressForStorageLowercases(t *testing.T) {
	canonical, appErr := NormalizeAddressForStorage("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if canonical != "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" {
		t.Fatalf("expected lowercase canonical, got %s", canonical)
	}
}

func TestNormalizeAddressForStorageRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "0x123", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0xZZaeb6053f3e94c9b9a09f33669435e7ef1beae"} {
		if _, appErr := NormalizeAddressForStorage(raw); appErr == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestShortAddress(t *testing.T) {
	short := ShortAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	if short != "0x5aae...eaed" {
		t.Fatalf("unexpected short form: %s", short)
	}

	if got := ShortAddress("0x12"); got != "0x12" {
		t.Fatalf("expected short input unchanged, got %s", got)
	}
}
