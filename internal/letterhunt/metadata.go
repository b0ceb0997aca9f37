package letterhunt

import "storybloom-admin-backend/internal/models"

// Slots whose content embeds the child's name. Assets generated for them
// are personalized and unusable for other children.
var childPersonalizedSlots = map[SlotKey]bool{
	SlotTitleCard:   true,
	SlotTitleAudio:  true,
	SlotEndingAudio: true,
}

// Slots whose content depends on the target letter.
var letterSpecificSlots = map[SlotKey]bool{
	SlotIntroVideo:   true,
	SlotIntroAudio:   true,
	SlotIntro2Video:  true,
	SlotIntro2Audio:  true,
	SlotSignImage:    true,
	SlotBookImage:    true,
	SlotGroceryImage: true,
	SlotEndingImage:  true,
	SlotEndingAudio:  true,
}

// MetadataFor builds the metadata bag a newly generated asset should carry
// so the next resolution pass fetches and classifies it correctly.
func MetadataFor(key SlotKey, req Request) models.AssetMetadata {
	md := models.AssetMetadata{Template: TemplateName}

	if childPersonalizedSlots[key] {
		md.ChildName = req.ChildName
	}
	if letterSpecificSlots[key] {
		md.TargetLetter = req.TargetLetter
	}

	def, ok := SlotByKey(key)
	if !ok {
		return md
	}
	switch def.Kind {
	case models.AssetTypeImage:
		md.ImageType = string(key)
	case models.AssetTypeAudio:
		md.AssetPurpose = string(key)
	case models.AssetTypeVideo:
		md.VideoType = string(key)
	}

	return md
}
