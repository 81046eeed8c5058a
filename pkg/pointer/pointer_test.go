// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taakbeheer/pkg/pointer"
)

/*
TestNonBlank verifies trimming and the nil result for blank input.
*/
func TestNonBlank(t *testing.T) {
	assert.Nil(t, pointer.NonBlank(nil))
	assert.Nil(t, pointer.NonBlank(pointer.To("")))
	assert.Nil(t, pointer.NonBlank(pointer.To("   \t")))
	assert.Equal(t, "notes", *pointer.NonBlank(pointer.To("  notes ")))
}
