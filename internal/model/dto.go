package model

// ImportResult summarizes one roster import.
type ImportResult struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// AttendanceResult summarizes one attendance upload.
type AttendanceResult struct {
	DatesProcessed []string `json:"datesProcessed"`
	RowsWritten    int      `json:"rowsWritten"`
	RowsSkipped    int      `json:"rowsSkipped"`
	AbsencesAdded  int      `json:"absencesAdded"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

type NoteRequest struct {
	StudentID int64    `json:"studentId" binding:"required"`
	Type      NoteType `json:"type" binding:"required,oneof=note commendation"`
	Body      string   `json:"body" binding:"required"`
}

type ExitRequestCreate struct {
	StudentID int64  `json:"studentId" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Date      string `json:"date" binding:"required,dateymd"`
}

type SendOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Code   string `json:"code" binding:"required,len=4"`
}

type CheckinRequest struct {
	Mobile  string `json:"mobile" binding:"required"`
	Code    string `json:"code" binding:"required,len=4"`
	Name    string `json:"name" binding:"required"`
	Purpose string `json:"purpose"`
}

type DirectoryRecordRequest struct {
	NationalID string `json:"nationalId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Grade      string `json:"grade"`
	ClassName  string `json:"className"`
	Mobile     string `json:"mobile"`
	Subject    string `json:"subject"`
}
