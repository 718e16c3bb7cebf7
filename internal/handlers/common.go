// common.go
//
// RoomFinder listings and helper-profile data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of roomfinder-api.
// roomfinder-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// roomfinder-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with roomfinder-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/submission"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/roomfinder/roomfinder-api/internal/utils"
)

// payloadField carries the JSON form in multipart submissions.
const payloadField = "payload"

// respondError renders err with the API error envelope.
func respondError(c *fiber.Ctx, err error) error {
	ce := types.AsCustomError(err)
	return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
}

// parseSubmission decodes a JSON body, or a multipart body whose payload part holds
// the JSON form, into dest. Multipart bodies without a payload part are read as
// plain form fields. Files posted under fileFields become pending uploads in the
// order they were sent.
func parseSubmission(c *fiber.Ctx, dest any, fileFields ...string) ([]submission.PendingFile, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if len(c.Body()) == 0 {
			return nil, types.ValidationError("request body is required")
		}
		if err := json.Unmarshal(c.Body(), dest); err != nil {
			return nil, types.ValidationError("invalid JSON body: %v", err)
		}
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, types.ValidationError("invalid multipart body: %v", err)
	}

	if err := decodeFormValues(form, dest); err != nil {
		return nil, err
	}

	var files []submission.PendingFile
	for _, field := range fileFields {
		for _, fh := range form.File[field] {
			files = append(files, pendingFile(field, fh))
		}
	}
	return files, nil
}

func decodeFormValues(form *multipart.Form, dest any) error {
	if payload := form.Value[payloadField]; len(payload) > 0 {
		if err := json.Unmarshal([]byte(payload[0]), dest); err != nil {
			return types.ValidationError("invalid %s field: %v", payloadField, err)
		}
		return nil
	}

	fields := make(map[string]any, len(form.Value))
	for key, values := range form.Value {
		switch len(values) {
		case 0:
		case 1:
			fields[key] = values[0]
		default:
			fields[key] = values
		}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return types.ValidationError("invalid form: %v", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return types.ValidationError("invalid form: %v", err)
	}
	return nil
}

func pendingFile(field string, fh *multipart.FileHeader) submission.PendingFile {
	return submission.PendingFile{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// queryInt reads an integer query parameter, 0 when absent or malformed.
func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return n
}

// queryBool reads a boolean query parameter.
func queryBool(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
