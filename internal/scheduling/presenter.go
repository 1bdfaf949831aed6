package scheduling

import (
	"strings"

	"clinic-booking-server/internal/models"
)

// AppointmentView is the flattened appointment projection returned by the
// booking endpoints: appointment fields plus the joined patient and doctor
// columns, all dates rendered for display.
type AppointmentView struct {
	AppointmentID       string `json:"appointmentId"`
	AppointmentDateTime string `json:"appointmentDateTime"`
	ReasonForVisit      string `json:"reasonForVisit"`
	Status              string `json:"status"`
	Notes               string `json:"notes,omitempty"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`

	PatientID        string `json:"patientId"`
	PatientName      string `json:"patientName"`
	PatientNameAge   string `json:"patientNameAge"`
	PatientAge       string `json:"patientAge"`
	PatientGender    string `json:"patientGender"`
	PatientDob       string `json:"patientDob,omitempty"`
	PatientMobileNo  string `json:"patientMobileNo"`
	PatientEmail     string `json:"patientEmail"`
	PatientCreatedAt string `json:"patientCreatedAt"`
	PatientUpdatedAt string `json:"patientUpdatedAt"`
	PatientDisplay   bool   `json:"patientDisplay"`
	PatientInforce   bool   `json:"patientInforce"`
	PatientRemarks   string `json:"patientRemarks,omitempty"`
	PatientAboutMe   string `json:"patientAboutMe,omitempty"`

	DoctorID       string `json:"doctorId"`
	DoctorName     string `json:"doctorName"`
	DoctorMobileNo string `json:"doctorMobileNo"`
	DoctorEmail    string `json:"doctorEmail"`
}

// FormatAppointment flattens a joined appointment into its view. The
// appointment's calendar date and time-of-day string are concatenated into
// one display field; they are stored separately and never merged otherwise.
func FormatAppointment(appt *models.Appointment) AppointmentView {
	view := AppointmentView{
		AppointmentID:       appt.ID,
		AppointmentDateTime: FormatOnlyDate(appt.AppointmentDate) + " " + appt.AppointmentTime,
		ReasonForVisit:      appt.ReasonForVisit,
		Status:              strings.ToUpper(string(appt.Status)),
		Notes:               appt.Notes,
		CreatedAt:           FormatDate(appt.CreatedAt),
		UpdatedAt:           FormatDate(appt.UpdatedAt),
	}

	patient := appt.Patient
	view.PatientID = appt.PatientID
	view.PatientName = patient.Name
	view.PatientAge = CalculateAge(patient.DateOfBirth)
	view.PatientNameAge = patient.Name + " (" + view.PatientAge + ")"
	view.PatientGender = patient.Gender
	if patient.DateOfBirth != nil {
		view.PatientDob = FormatOnlyDate(*patient.DateOfBirth)
	}
	view.PatientMobileNo = patient.MobileNo
	view.PatientEmail = patient.Email
	view.PatientCreatedAt = FormatDate(patient.CreatedAt)
	view.PatientUpdatedAt = FormatDate(patient.UpdatedAt)
	view.PatientDisplay = patient.Display
	view.PatientInforce = patient.Inforce
	view.PatientRemarks = patient.Remarks
	view.PatientAboutMe = patient.AboutMe

	view.DoctorID = appt.DoctorID
	view.DoctorName = appt.Doctor.Name
	view.DoctorMobileNo = appt.Doctor.MobileNo
	view.DoctorEmail = appt.Doctor.Email

	return view
}

// PatientComposite combines a person, their record-keeping rows and their
// current appointments into one presentation record.
type PatientComposite struct {
	PatientID    string                 `json:"patientId"`
	Name         string                 `json:"name"`
	NameAge      string                 `json:"nameAge"`
	Age          string                 `json:"age"`
	Gender       string                 `json:"gender"`
	Dob          string                 `json:"dob,omitempty"`
	MobileNo     string                 `json:"mobileNo"`
	Email        string                 `json:"email"`
	Records      []models.PatientRecord `json:"records"`
	Appointments []AppointmentView      `json:"appointments"`
}

// FormatPatientComposite builds the composite record for one patient.
// Records is typically zero or one rows; appointments may be empty for the
// non-scheduled partition.
func FormatPatientComposite(user *models.User, records []models.PatientRecord, appts []AppointmentView) PatientComposite {
	if records == nil {
		records = []models.PatientRecord{}
	}
	if appts == nil {
		appts = []AppointmentView{}
	}
	age := CalculateAge(user.DateOfBirth)
	composite := PatientComposite{
		PatientID:    user.ID,
		Name:         user.Name,
		NameAge:      user.Name + " (" + age + ")",
		Age:          age,
		Gender:       user.Gender,
		MobileNo:     user.MobileNo,
		Email:        user.Email,
		Records:      records,
		Appointments: appts,
	}
	if user.DateOfBirth != nil {
		composite.Dob = FormatOnlyDate(*user.DateOfBirth)
	}
	return composite
}
