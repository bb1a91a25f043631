package studio

// User-facing messages. The application speaks Thai.
const (
	MsgNotConfigured    = "กรุณาตั้งค่า API Key ก่อนใช้งาน"
	MsgConnectionError  = "เกิดข้อผิดพลาดในการเชื่อมต่อกับ AI: "
	MsgEmptyText        = "ไม่สามารถสร้างเนื้อหาได้ (API response error)."
	MsgEmptyImage       = "ไม่สามารถสร้างภาพได้ (โปรดลอง prompt อื่น)"
	MsgSpeechFailed     = "เกิดข้อผิดพลาดในการสร้างเสียงพูด"
	MsgNothingToSpeak   = "ไม่พบข้อความให้พูด กรุณาลองสร้างผลลัพธ์ก่อน"
	MsgNoAudio          = "ไม่พบไฟล์เสียงที่สร้างล่าสุด"
	MsgEmptyInput       = "กรุณาใส่ข้อมูลในช่องก่อน"
	MsgEmptyImagePrompt = "กรุณาใส่คำบรรยายภาพ"
	MsgMissingCharacter = "กรุณาใส่ชื่อและรายละเอียดตัวละคร"
	MsgSpeechBusy       = "กำลังสร้างเสียงอยู่ กรุณารอสักครู่"
	MsgKeyRequired      = "กรุณากรอก API Key"
	MsgKeySaved         = "บันทึก API Key เรียบร้อยแล้ว"

	// TruncationSuffix is appended to speech text cut to MaxSpeechChars.
	TruncationSuffix = "... (ข้อความถูกตัดให้สั้นลง)"
)
