package synology

import (
	"encoding/json"
)

const (
	authPath = "/webapi/auth.cgi"
	taskPath = "/webapi/DownloadStation/task.cgi"
)

// loginParams are the SYNO.API.Auth login form fields
type loginParams struct {
	API     string `url:"api"`
	Version int    `url:"version"`
	Method  string `url:"method"`
	Account string `url:"account"`
	Passwd  string `url:"passwd"`
	Session string `url:"session"`
	Format  string `url:"format"`
	OTPCode string `url:"otp_code,omitempty"`
}

func newLoginParams(account, passwd, otpCode string) loginParams {
	return loginParams{
		API:     "SYNO.API.Auth",
		Version: 6,
		Method:  "login",
		Account: account,
		Passwd:  passwd,
		Session: "FileStation",
		Format:  "cookie",
		OTPCode: otpCode,
	}
}

// createTaskParams are the SYNO.DownloadStation.Task create form fields
type createTaskParams struct {
	API         string `url:"api"`
	Version     string `url:"version"`
	Method      string `url:"method"`
	Session     string `url:"session"`
	SID         string `url:"_sid"`
	URI         string `url:"uri"`
	Destination string `url:"destination"`
}

func newCreateTaskParams(sid, uri, destination string) createTaskParams {
	return createTaskParams{
		API:         "SYNO.DownloadStation.Task",
		Version:     "1",
		Method:      "create",
		Session:     "DownloadStation",
		SID:         sid,
		URI:         uri,
		Destination: destination,
	}
}

// apiResponse is the envelope every Synology web API call returns
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

type apiError struct {
	Code   int `json:"code"`
	Errors struct {
		Types []struct {
			Type string `json:"type"`
		} `json:"types"`
	} `json:"errors"`
}

type loginData struct {
	SID string `json:"sid"`
}

// otpRequired reports whether the failure lists "otp" among its error types
func (r apiResponse) otpRequired() bool {
	if len(r.Error) == 0 {
		return false
	}
	var e apiError
	if err := json.Unmarshal(r.Error, &e); err != nil {
		return false
	}
	for _, t := range e.Errors.Types {
		if t.Type == "otp" {
			return true
		}
	}
	return false
}

func (r apiResponse) errorPayload() string {
	if len(r.Error) == 0 {
		return "{}"
	}
	return string(r.Error)
}
