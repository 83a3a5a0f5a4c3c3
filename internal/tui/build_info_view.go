// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strconv"

	"github.com/MKhiriev/go-mutual-friends/internal/bundle"
	"github.com/MKhiriev/go-mutual-friends/internal/crypto"
	"github.com/MKhiriev/go-mutual-friends/models"
)

// renderBuildInfoWindow shows the binary version next to the bundle format
// it writes, so both parties can tell whether their files are compatible.
func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Программа", "go-mutual-friends"},
		{"Версия", info.BuildVersion()},
		{"Дата сборки", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
		{"Формат файлов", "v" + strconv.Itoa(int(bundle.FormatVersion))},
		{"Профиль шифрования", crypto.DefaultProfile},
	}

	return renderPage("ИНФОРМАЦИЯ О ПРОГРАММЕ", renderTable("Параметр", "Значение", rows), "esc: назад")
}
